package sqlite

import "strings"

// modernc.org/sqlite reports constraint failures only through the error
// string, so the repositories match on the SQLite message text to map
// them onto repository sentinel errors.

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
