package stores

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrFilterTooLong = fmt.Errorf("search filter exceeds %d characters", MaxFilterLength)
	ErrUsernameTaken = errors.New("username already taken")
)

// MissingFieldError reports a required field absent from a create or update.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing `%s` in request body", e.Field)
}

type IDMismatchError struct {
	PathID string
	BodyID string
}

func (e *IDMismatchError) Error() string {
	return fmt.Sprintf("Request path id `%s` and request body id `%s` must match.", e.PathID, e.BodyID)
}

// NameConflictError is returned when an owner already has an album with the same name.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("Album name `%s` already taken", e.Name)
}

func (e *NameConflictError) Location() string {
	return "albumName"
}
