package models

import (
	"context"
	"fmt"
	"strings"
)

type Contact struct {
	ID      int64  `json:"id" example:"1"`
	Name    string `json:"name" example:"Alice"`
	Surname string `json:"surname" example:"Smith"`
	Company string `json:"company" example:"Acme"`
	Phone   string `json:"phone" example:"+123456789"`
	Address string `json:"address" example:"1 Main St"`
}

// ContactFields is the caller-supplied part of a contact. Every write
// rewrites all of them; absent optional fields become empty.
type ContactFields struct {
	Name    string
	Surname string
	Company string
	Phone   string
	Address string
}

// Normalize trims every field.
func (f ContactFields) Normalize() ContactFields {
	return ContactFields{
		Name:    strings.TrimSpace(f.Name),
		Surname: strings.TrimSpace(f.Surname),
		Company: strings.TrimSpace(f.Company),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
	}
}

// Validate reports the required fields that are blank, in field order.
func (f ContactFields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (f ContactFields) WithID(id int64) *Contact {
	return &Contact{
		ID:      id,
		Name:    f.Name,
		Surname: f.Surname,
		Company: f.Company,
		Phone:   f.Phone,
		Address: f.Address,
	}
}

// SortKey selects the listing order.
type SortKey string

const (
	SortByID          SortKey = "id"
	SortByNameSurname SortKey = "name_surname"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByNameSurname:
		return SortByNameSurname, nil
	case SortByID:
		return SortByID, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Less orders a before b under key. Ties fall back to id, which is
// insertion order since ids are never reused.
func (key SortKey) Less(a, b *Contact) bool {
	if key == SortByNameSurname {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Surname != b.Surname {
			return a.Surname < b.Surname
		}
	}
	return a.ID < b.ID
}

// ContactRepository is a persistence backend. Implementations do not
// validate; they return ErrNotFound for unknown ids and wrap
// ErrStorageUnavailable when the backend cannot be reached.
type ContactRepository interface {
	List(ctx context.Context, key SortKey) ([]*Contact, error)
	Get(ctx context.Context, id int64) (*Contact, error)
	Create(ctx context.Context, fields ContactFields) (*Contact, error)
	Update(ctx context.Context, id int64, fields ContactFields) (*Contact, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
