package database

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no article matches the requested ID.
	ErrNotFound = errors.New("article not found")
	// ErrConflict is returned when an insert or update collides with the
	// unique URL constraint.
	ErrConflict = errors.New("article with this URL already exists")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
