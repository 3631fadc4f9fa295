package models

// ContactRequest is the body of POST /contacts and PUT /contacts/{id}.
type ContactRequest struct {
	Name    string `json:"name" example:"Alice" swagger:"required" description:"Contact name"`
	Surname string `json:"surname" example:"Smith"`
	Company string `json:"company" example:"Acme"`
	Phone   string `json:"phone" example:"+123456789" swagger:"required" description:"Phone number"`
	Address string `json:"address" example:"1 Main St"`
}

func (r *ContactRequest) Fields() ContactFields {
	return ContactFields{
		Name:    r.Name,
		Surname: r.Surname,
		Company: r.Company,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

type ExportRequest struct {
	Format string `json:"format" example:"json" enums:"json,vcf"`
}
