package services

import (
	"strings"
	"testing"

	"phonebook/internal/models"
)

func TestVCard(t *testing.T) {
	card := VCard(&models.Contact{
		ID:      1,
		Name:    "Alice",
		Surname: "Smith",
		Company: "Acme, Inc",
		Phone:   "+123456789",
		Address: "1 Main St; Apt 2",
	})

	for _, want := range []string{
		"BEGIN:VCARD\r\n",
		"VERSION:3.0\r\n",
		"N:Smith;Alice;;;\r\n",
		"FN:Alice Smith\r\n",
		"ORG:Acme\\, Inc\r\n",
		"TEL;TYPE=CELL:+123456789\r\n",
		"ADR;TYPE=HOME:;;1 Main St\\; Apt 2;;;;\r\n",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("Expected %q in card:\n%s", want, card)
		}
	}
	if !strings.HasSuffix(card, "END:VCARD\r\n") {
		t.Errorf("Card not terminated: %q", card)
	}
}

func TestVCardOmitsEmptyOptionals(t *testing.T) {
	card := VCard(&models.Contact{ID: 1, Name: "Bob", Phone: "1"})

	if strings.Contains(card, "ORG:") || strings.Contains(card, "ADR") {
		t.Errorf("Expected no ORG or ADR lines:\n%s", card)
	}
	if !strings.Contains(card, "FN:Bob\r\n") {
		t.Errorf("Expected FN without trailing space:\n%s", card)
	}
}
