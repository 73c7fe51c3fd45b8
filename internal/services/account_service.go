package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/auth"
	"github.com/ecxhq/identity-be/internal/models"
	"github.com/ecxhq/identity-be/internal/store"
	"github.com/ecxhq/identity-be/internal/timefmt"
)

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Register(input RegisterInput) (models.AccountSummary, error)
	Authenticate(input LoginInput) (models.AccountSummary, string, error)
	ListAccounts() ([]models.Account, error)
	UpdateAccount(current models.Account, input UpdateInput) (models.AccountSummary, error)
	DeleteAccount(account models.Account) error
}

// RegisterInput carries a signup request. Names and Occupation are optional.
type RegisterInput struct {
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	Names      []string `json:"names"`
	Occupation string   `json:"occupation"`
}

// LoginInput carries a login request. At least one of Email or Username is
// required.
type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateInput carries a partial account update. Empty fields are left
// untouched; at least one must be set.
type UpdateInput struct {
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	Names      []string `json:"names"`
	Occupation string   `json:"occupation"`
}

// AccountService provides the registration, authentication and account
// management workflows.
//
// During authentication an unknown identifier and a wrong password are
// reported as different outcomes. That disclosure is a known enumeration
// side channel, preserved on purpose because existing clients key off the
// two messages.
type AccountService struct {
	accounts store.AccountStore
	tokens   *auth.TokenIssuer
	events   EventServiceProvider

	// now supplies the lastLogin timestamp; swapped in tests.
	now func() string
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts store.AccountStore, tokens *auth.TokenIssuer, events EventServiceProvider) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokens:   tokens,
		events:   events,
		now:      timefmt.Now,
	}
}

// Register validates the signup input, hashes the password and persists the
// new account in one write. Required fields are checked in a fixed order and
// only the first missing one is reported.
func (s *AccountService) Register(input RegisterInput) (models.AccountSummary, error) {
	if input.Email == "" {
		return models.AccountSummary{}, missingField("email", "Please provide a valid email")
	}
	if input.Username == "" {
		return models.AccountSummary{}, missingField("username", "Please provide a valid username")
	}
	if input.Password == "" {
		return models.AccountSummary{}, missingField("password", "Please provide a password")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.AccountSummary{}, fmt.Errorf("hashing password: %w", err)
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Names:        input.Names,
		Occupation:   input.Occupation,
		LastLogin:    s.now(),
	}

	if err := s.accounts.Insert(account); err != nil {
		var uerr *store.UniquenessError
		if errors.As(err, &uerr) {
			return models.AccountSummary{}, newConflictError(uerr, signupConflictLine)
		}
		return models.AccountSummary{}, fmt.Errorf("inserting account: %w", err)
	}

	s.record("account.register", "info", fmt.Sprintf("Account %s registered", account.Username), account.ID)
	return account.Summary(), nil
}

// Authenticate resolves the account by email (preferred) or username,
// verifies the password, stamps lastLogin and issues a session token.
func (s *AccountService) Authenticate(input LoginInput) (models.AccountSummary, string, error) {
	if input.Email == "" && input.Username == "" {
		return models.AccountSummary{}, "", ErrMissingIdentifier
	}

	var account models.Account
	var err error
	var identifier NotFoundError
	if input.Email != "" {
		identifier = NotFoundError{Field: "email", Value: input.Email}
		account, err = s.accounts.FindByEmail(input.Email)
	} else {
		identifier = NotFoundError{Field: "username", Value: input.Username}
		account, err = s.accounts.FindByUsername(input.Username)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AccountSummary{}, "", &identifier
		}
		return models.AccountSummary{}, "", fmt.Errorf("looking up account: %w", err)
	}

	if input.Password == "" {
		return models.AccountSummary{}, "", missingField("password", "Please provide a password")
	}

	if !auth.CheckPassword(input.Password, account.PasswordHash) {
		s.record("auth.login.fail", "warn", fmt.Sprintf("Failed login for %s", account.Username), account.ID)
		return models.AccountSummary{}, "", ErrInvalidCredentials
	}

	account.LastLogin = s.now()
	if err := s.accounts.Update(account); err != nil {
		return models.AccountSummary{}, "", fmt.Errorf("updating last login: %w", err)
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return models.AccountSummary{}, "", fmt.Errorf("issuing token: %w", err)
	}

	s.record("auth.login.success", "info", fmt.Sprintf("Account %s logged in", account.Username), account.ID)
	return account.Summary(), token, nil
}

// ListAccounts returns every account.
func (s *AccountService) ListAccounts() ([]models.Account, error) {
	return s.accounts.FindAll()
}

// UpdateAccount applies the provided fields to an already-resolved account
// and rewrites the record. The current password is not re-verified; holding a
// valid session token is the only requirement.
func (s *AccountService) UpdateAccount(current models.Account, input UpdateInput) (models.AccountSummary, error) {
	if input.Email == "" && input.Username == "" && input.Password == "" &&
		input.Names == nil && input.Occupation == "" {
		return models.AccountSummary{}, ErrNoUpdateFields
	}

	if input.Email != "" {
		current.Email = input.Email
	}
	if input.Username != "" {
		current.Username = input.Username
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return models.AccountSummary{}, fmt.Errorf("hashing password: %w", err)
		}
		current.PasswordHash = hash
	}
	if input.Names != nil {
		current.Names = input.Names
	}
	if input.Occupation != "" {
		current.Occupation = input.Occupation
	}

	if err := s.accounts.Update(current); err != nil {
		var uerr *store.UniquenessError
		if errors.As(err, &uerr) {
			return models.AccountSummary{}, newConflictError(uerr, updateConflictLine)
		}
		return models.AccountSummary{}, fmt.Errorf("updating account: %w", err)
	}

	s.record("account.update", "info", fmt.Sprintf("Account %s updated", current.Username), current.ID)
	return current.Summary(), nil
}

// DeleteAccount removes the account permanently. There is no soft delete.
func (s *AccountService) DeleteAccount(account models.Account) error {
	if err := s.accounts.Delete(account.ID); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	s.record("account.delete", "info", fmt.Sprintf("Account %s deleted", account.Username), account.ID)
	return nil
}

// record writes an audit event; a failure there never fails the workflow.
func (s *AccountService) record(eventType, level, message, accountID string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, level, message, &accountID); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}
