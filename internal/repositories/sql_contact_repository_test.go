package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"phonebook/internal/models"
)

func newSQLiteRepository(t *testing.T) *SQLContactRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "phonebook.db")
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)

	repo, err := NewSQLContactRepository(db, DialectSQLite)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteContactRepository(t *testing.T) {
	testContactRepository(t, func(t *testing.T) models.ContactRepository {
		return newSQLiteRepository(t)
	})
}

func TestSQLiteStoresEmptyOptionalsAsNull(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ContactFields{Name: "Alice", Phone: "1"})
	if err != nil {
		t.Fatalf("Failed to create contact: %v", err)
	}

	var surname sql.NullString
	err = repo.db.QueryRowContext(ctx, "SELECT surname FROM contacts WHERE id = ?", created.ID).Scan(&surname)
	if err != nil {
		t.Fatalf("Failed to read surname: %v", err)
	}
	if surname.Valid {
		t.Errorf("Expected NULL surname, got %q", surname.String)
	}
}

func TestSQLiteEnsureSchemaIsIdempotent(t *testing.T) {
	repo := newSQLiteRepository(t)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Errorf("Second EnsureSchema failed: %v", err)
	}
}

func TestSQLClosedDatabaseIsUnavailable(t *testing.T) {
	repo := newSQLiteRepository(t)
	repo.Close()

	_, err := repo.List(context.Background(), models.SortByID)
	if !errors.Is(err, models.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
	if err := repo.Ping(context.Background()); !errors.Is(err, models.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable from Ping, got %v", err)
	}
}

func TestNewSQLContactRepositoryRejectsUnknownDialect(t *testing.T) {
	if _, err := NewSQLContactRepository(nil, "oracle"); err == nil {
		t.Error("Expected an error for an unknown dialect")
	}
}

// Runs only against a disposable database, e.g.
// PHONEBOOK_TEST_MYSQL_DSN="root:pw@tcp(localhost:3306)/phonebook_test?clientFoundRows=true"
func TestMySQLContactRepository(t *testing.T) {
	dsn := os.Getenv("PHONEBOOK_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PHONEBOOK_TEST_MYSQL_DSN not set")
	}

	testContactRepository(t, func(t *testing.T) models.ContactRepository {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			t.Fatalf("Failed to open mysql: %v", err)
		}
		if _, err := db.Exec("DROP TABLE IF EXISTS contacts"); err != nil {
			t.Fatalf("Failed to reset table: %v", err)
		}
		repo, err := NewSQLContactRepository(db, DialectMySQL)
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}
		if err := repo.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
		t.Cleanup(func() { repo.Close() })
		return repo
	})
}

func TestSQLOrderByUsesBinaryCollationOnMySQL(t *testing.T) {
	mysqlRepo, _ := NewSQLContactRepository(nil, DialectMySQL)
	sqliteRepo, _ := NewSQLContactRepository(nil, DialectSQLite)

	if got := mysqlRepo.orderBy(models.SortByNameSurname); got != "name COLLATE utf8mb4_bin, surname COLLATE utf8mb4_bin, id" {
		t.Errorf("Unexpected mysql order %q", got)
	}
	if got := sqliteRepo.orderBy(models.SortByNameSurname); got != "name, surname, id" {
		t.Errorf("Unexpected sqlite order %q", got)
	}
	if got := mysqlRepo.orderBy(models.SortByID); got != "id" {
		t.Errorf("Unexpected id order %q", got)
	}
}
