// Package store persists registrations.
//
// Backend failures are returned as *StorageError and never swallowed.
// Absence is not an error: lookups report it through their found result.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/registration-api/internal/models"
)

// Store is the persistence contract used by the request handlers.
type Store interface {
	// FindByPhoneOrEmail returns the id of a registration using either key.
	// The phone number is checked first; its match wins when both keys hit
	// different records.
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (string, bool, error)

	// Insert issues a new id and registration date and stores the record.
	// A record colliding on email or phone yields an error matching ErrDuplicate.
	Insert(ctx context.Context, fields models.RegistrationFields) (models.Registration, error)

	GetByID(ctx context.Context, id string) (models.Registration, bool, error)

	// ListFiltered returns records whose full name, email, college or branch
	// contains search, newest first. An empty search returns everything.
	ListFiltered(ctx context.Context, search string) ([]models.Registration, error)
}

// ErrDuplicate reports that the backend rejected a write on a unique key.
var ErrDuplicate = errors.New("registration already exists")

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
