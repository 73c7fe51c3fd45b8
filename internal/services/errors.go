package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecxhq/identity-be/internal/store"
)

// The message texts below are part of the API contract and must stay stable.

var (
	// ErrMissingIdentifier is returned when a login supplies neither an email
	// nor a username.
	ErrMissingIdentifier = errors.New("Please provide a valid email or username to login.")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("Wrong password, please login with correct password.")

	// ErrNoUpdateFields is returned when an update carries nothing to change.
	ErrNoUpdateFields = errors.New("Please provide valid email, username, password, names or occupation to update in the user!")
)

// MissingFieldError reports the first required field absent from a request.
type MissingFieldError struct {
	Field   string
	Message string
}

func (e *MissingFieldError) Error() string { return e.Message }

func missingField(field, message string) *MissingFieldError {
	return &MissingFieldError{Field: field, Message: message}
}

// NotFoundError reports a login identifier that matched no account. The
// identifier kind and value are echoed back; this discloses account existence
// and is kept deliberately for compatibility with existing clients.
type NotFoundError struct {
	Field string
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with %s: %s not found, please correct your details or sign up.", e.Field, e.Value)
}

// ConflictError reports unique-field collisions, one line per violated field,
// with the full list formatted into a single message.
type ConflictError struct {
	Violations []store.FieldViolation
	message    string
}

func (e *ConflictError) Error() string { return e.message }

// newConflictError renders one line per violation and terminates the
// combined message with a period.
func newConflictError(uerr *store.UniquenessError, line func(store.FieldViolation) string) *ConflictError {
	lines := make([]string, len(uerr.Violations))
	for i, v := range uerr.Violations {
		lines[i] = line(v)
	}
	return &ConflictError{
		Violations: uerr.Violations,
		message:    strings.Join(lines, "\n") + ".",
	}
}

func signupConflictLine(v store.FieldViolation) string {
	return fmt.Sprintf("User with %s: %s exists already", v.Field, v.Value)
}

func updateConflictLine(v store.FieldViolation) string {
	return fmt.Sprintf("User with %s: %s exists already. Please use a different %s", v.Field, v.Value, v.Field)
}
