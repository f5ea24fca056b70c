package repository

import "errors"

var (
	// ErrNotFound is returned when a uuid doesn't resolve to an entity
	// owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails at the
	// storage layer (unknown sort column, unknown attribute)
	ErrInvalidInput = errors.New("invalid input")
)
