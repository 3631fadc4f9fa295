package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"phonebook/internal/models"
	"phonebook/internal/utils"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportDisabled    = errors.New("export is not configured")
)

// ExportService uploads snapshots of the contact list.
type ExportService struct {
	contacts *ContactService
	uploader *S3Service
	now      func() time.Time
}

func NewExportService(contacts *ContactService, uploader *S3Service) *ExportService {
	return &ExportService{contacts: contacts, uploader: uploader, now: time.Now}
}

// Encode renders contacts in the given format (json or vcf).
func Encode(contacts []*models.Contact, format string) ([]byte, string, error) {
	contentType, ok := utils.GetMimeFromFormat(strings.ToLower(format))
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch contentType {
	case "application/json":
		data, err := json.MarshalIndent(contacts, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("error encoding contacts: %w", err)
		}
		return data, contentType, nil
	default:
		var b strings.Builder
		for _, c := range contacts {
			b.WriteString(VCard(c))
		}
		return []byte(b.String()), contentType, nil
	}
}

// Export uploads the current list and returns the object URL.
func (s *ExportService) Export(ctx context.Context, format string) (string, error) {
	if s == nil || s.uploader == nil {
		return "", ErrExportDisabled
	}
	defer utils.TimeTrack(time.Now(), "export "+format)

	contacts, err := s.contacts.List(ctx)
	if err != nil {
		return "", err
	}

	data, contentType, err := Encode(contacts, format)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("contacts-%d.%s", s.now().UnixNano(), utils.GetExtensionFromMime(contentType))
	return s.uploader.UploadBytes(ctx, data, fileName, contentType)
}
