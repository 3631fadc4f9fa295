package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"phonebook/internal/models"
	"phonebook/internal/utils"
)

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

var contactsSchema = map[string]string{
	DialectMySQL: `
		CREATE TABLE IF NOT EXISTS contacts (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name TEXT NOT NULL,
			surname TEXT,
			company TEXT,
			phone TEXT NOT NULL,
			address TEXT
		) DEFAULT CHARSET=utf8mb4`,
	// AUTOINCREMENT keeps sqlite from reusing the ids of deleted rows.
	DialectSQLite: `
		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			surname TEXT,
			company TEXT,
			phone TEXT NOT NULL,
			address TEXT
		)`,
}

// SQLContactRepository serves the mysql and sqlite backends. Both use ?
// placeholders and report LastInsertId.
type SQLContactRepository struct {
	db      *sql.DB
	dialect string
}

var _ models.ContactRepository = (*SQLContactRepository)(nil)

func NewSQLContactRepository(db *sql.DB, dialect string) (*SQLContactRepository, error) {
	if _, ok := contactsSchema[dialect]; !ok {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	return &SQLContactRepository{db: db, dialect: dialect}, nil
}

// EnsureSchema creates the contacts table if it is missing.
func (r *SQLContactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, contactsSchema[r.dialect]); err != nil {
		return wrapError("creating contacts table", err)
	}
	return nil
}

// orderBy compares text by bytes on every dialect. sqlite already does.
func (r *SQLContactRepository) orderBy(key models.SortKey) string {
	if key == models.SortByID {
		return "id"
	}
	if r.dialect == DialectMySQL {
		return "name COLLATE utf8mb4_bin, surname COLLATE utf8mb4_bin, id"
	}
	return "name, surname, id"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var surname, company, address sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.Name,
		&surname,
		&company,
		&contact.Phone,
		&address,
	)
	if err != nil {
		return nil, err
	}

	contact.Surname = surname.String
	contact.Company = company.String
	contact.Address = address.String
	return contact, nil
}

func (r *SQLContactRepository) List(ctx context.Context, key models.SortKey) ([]*models.Contact, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	defer conn.Close()

	query := `
		SELECT id, name, surname, company, phone, address
		FROM contacts
		ORDER BY ` + r.orderBy(key)

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("querying contacts", err)
	}
	defer rows.Close()

	contacts := []*models.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, wrapError("scanning contact", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, wrapError("iterating contacts", err)
	}

	return contacts, nil
}

func (r *SQLContactRepository) Get(ctx context.Context, id int64) (*models.Contact, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, `
		SELECT id, name, surname, company, phone, address
		FROM contacts
		WHERE id = ?`, id)

	contact, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, wrapError("getting contact", err)
	}
	return contact, nil
}

// withTx runs fn in a transaction on a connection held for the whole call.
// The transaction is bound to ctx, so an abandoned request rolls back.
func (r *SQLContactRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return unavailable(err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return wrapError("starting transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapError("committing transaction", err)
	}
	return nil
}

func (r *SQLContactRepository) Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error) {
	var contact *models.Contact
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO contacts (name, surname, company, phone, address)
			VALUES (?, ?, ?, ?, ?)`,
			fields.Name,
			utils.NullString(fields.Surname),
			utils.NullString(fields.Company),
			fields.Phone,
			utils.NullString(fields.Address),
		)
		if err != nil {
			return wrapError("saving contact", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return wrapError("getting last insert id", err)
		}

		contact = fields.WithID(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *SQLContactRepository) Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE contacts
			SET name = ?,
				surname = ?,
				company = ?,
				phone = ?,
				address = ?
			WHERE id = ?`,
			fields.Name,
			utils.NullString(fields.Surname),
			utils.NullString(fields.Company),
			fields.Phone,
			utils.NullString(fields.Address),
			id,
		)
		if err != nil {
			return wrapError("updating contact", err)
		}

		return requireRow(result)
	})
	if err != nil {
		return nil, err
	}
	return fields.WithID(id), nil
}

func (r *SQLContactRepository) Delete(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
		if err != nil {
			return wrapError("deleting contact", err)
		}
		return requireRow(result)
	})
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return wrapError("getting affected rows", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *SQLContactRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *SQLContactRepository) Close() error {
	return r.db.Close()
}
