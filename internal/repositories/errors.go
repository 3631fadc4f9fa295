package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"phonebook/internal/models"
)

// isUnavailable reports errors that mean the backend could not be reached,
// as opposed to a statement that failed on a live connection.
func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

func wrapError(action string, err error) error {
	if errors.Is(err, models.ErrStorageUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("error %s: %w: %w", action, models.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("error %s: %w", action, err)
}

// unavailable wraps a failure to acquire a connection.
func unavailable(err error) error {
	return fmt.Errorf("error acquiring connection: %w: %w", models.ErrStorageUnavailable, err)
}
