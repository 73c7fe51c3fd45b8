// Package store defines the account persistence contract and its SQLite
// implementation.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecxhq/identity-be/internal/models"
)

// ErrNotFound signals that a lookup matched no account. It is a distinct
// outcome, not a storage failure.
var ErrNotFound = errors.New("account not found")

// AccountStore is the persistence contract for accounts. Insert and Update
// enforce email/username uniqueness atomically and report collisions as
// *UniquenessError.
type AccountStore interface {
	FindByID(id string) (models.Account, error)
	FindByEmail(email string) (models.Account, error)
	FindByUsername(username string) (models.Account, error)
	FindAll() ([]models.Account, error)
	Insert(account models.Account) error
	Update(account models.Account) error
	Delete(id string) error
}

// FieldViolation names one unique field whose candidate value collides with
// an existing account.
type FieldViolation struct {
	Field string
	Value string
}

// UniquenessError reports every unique field violated by a write, in schema
// order (email before username).
type UniquenessError struct {
	Violations []FieldViolation
}

func (e *UniquenessError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s %q already taken", v.Field, v.Value)
	}
	return "uniqueness violation: " + strings.Join(parts, ", ")
}
