package services

import (
	"errors"
	"strings"
)

// Sentinel errors shared by all services. Handlers map these to HTTP status
// codes with errors.Is; anything else is treated as an internal failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The modernc driver exposes the sqlite message verbatim.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
