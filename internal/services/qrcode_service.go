package services

import (
	"context"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// QRCodeService renders a contact's vCard as a scannable PNG.
type QRCodeService struct {
	contacts *ContactService
}

func NewQRCodeService(contacts *ContactService) *QRCodeService {
	return &QRCodeService{contacts: contacts}
}

func (s *QRCodeService) PNG(ctx context.Context, id int64) ([]byte, error) {
	contact, err := s.contacts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(VCard(contact), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("error encoding qr code for contact %d: %w", id, err)
	}
	return png, nil
}
