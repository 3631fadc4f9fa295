package services

import (
	"strings"

	"phonebook/internal/models"
)

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`;`, `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// VCard renders c as a vCard 3.0 card with CRLF line endings.
func VCard(c *models.Contact) string {
	var b strings.Builder
	line := func(s ...string) {
		b.WriteString(strings.Join(s, ""))
		b.WriteString("\r\n")
	}

	fn := strings.TrimSpace(c.Name + " " + c.Surname)

	line("BEGIN:VCARD")
	line("VERSION:3.0")
	line("N:", vcardEscaper.Replace(c.Surname), ";", vcardEscaper.Replace(c.Name), ";;;")
	line("FN:", vcardEscaper.Replace(fn))
	if c.Company != "" {
		line("ORG:", vcardEscaper.Replace(c.Company))
	}
	line("TEL;TYPE=CELL:", vcardEscaper.Replace(c.Phone))
	if c.Address != "" {
		line("ADR;TYPE=HOME:;;", vcardEscaper.Replace(c.Address), ";;;;")
	}
	line("END:VCARD")
	return b.String()
}
