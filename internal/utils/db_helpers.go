package utils

import "database/sql"

// NullString stores empty optional text as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}
