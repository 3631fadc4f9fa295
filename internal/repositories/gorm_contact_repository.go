package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"phonebook/internal/models"
	"phonebook/internal/utils"
)

type contactRow struct {
	ID      int64          `gorm:"primaryKey;autoIncrement"`
	Name    string         `gorm:"type:text;not null"`
	Surname sql.NullString `gorm:"type:text"`
	Company sql.NullString `gorm:"type:text"`
	Phone   string         `gorm:"type:text;not null"`
	Address sql.NullString `gorm:"type:text"`
}

// postgres sorts NULL last and follows the locale by default; empty
// surnames sort first and text compares by bytes, as on the other backends.
const nameSurnameOrder = `name COLLATE "C", COALESCE(surname, '') COLLATE "C", id`

func (contactRow) TableName() string { return "contacts" }

func (row *contactRow) contact() *models.Contact {
	return &models.Contact{
		ID:      row.ID,
		Name:    row.Name,
		Surname: row.Surname.String,
		Company: row.Company.String,
		Phone:   row.Phone,
		Address: row.Address.String,
	}
}

func columns(fields models.ContactFields) map[string]interface{} {
	return map[string]interface{}{
		"name":    fields.Name,
		"surname": utils.NullString(fields.Surname),
		"company": utils.NullString(fields.Company),
		"phone":   fields.Phone,
		"address": utils.NullString(fields.Address),
	}
}

// GormContactRepository serves the postgres backend.
type GormContactRepository struct {
	db *gorm.DB
}

var _ models.ContactRepository = (*GormContactRepository)(nil)

func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&contactRow{}); err != nil {
		return wrapError("migrating contacts table", err)
	}
	return nil
}

func (r *GormContactRepository) List(ctx context.Context, key models.SortKey) ([]*models.Contact, error) {
	order := "id"
	if key == models.SortByNameSurname {
		order = nameSurnameOrder
	}

	var rows []contactRow
	if err := r.db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, wrapError("querying contacts", err)
	}

	contacts := make([]*models.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].contact())
	}
	return contacts, nil
}

func (r *GormContactRepository) Get(ctx context.Context, id int64) (*models.Contact, error) {
	var row contactRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, wrapError("getting contact", err)
	}
	return row.contact(), nil
}

func (r *GormContactRepository) Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error) {
	row := contactRow{
		Name:    fields.Name,
		Surname: utils.NullString(fields.Surname),
		Company: utils.NullString(fields.Company),
		Phone:   fields.Phone,
		Address: utils.NullString(fields.Address),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, wrapError("saving contact", err)
	}
	return row.contact(), nil
}

func (r *GormContactRepository) Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&contactRow{}).Where("id = ?", id).Updates(columns(fields))
		if result.Error != nil {
			return wrapError("updating contact", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields.WithID(id), nil
}

func (r *GormContactRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&contactRow{}, "id = ?", id)
	if result.Error != nil {
		return wrapError("deleting contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *GormContactRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return unavailable(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *GormContactRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
