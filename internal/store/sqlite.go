package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ecxhq/identity-be/internal/models"
)

// SQLiteStore implements AccountStore on top of a sql.DB with UNIQUE columns
// on email and username. The database constraint is the single enforcement
// point for uniqueness; no pre-insert existence check is made.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, username, password_hash, names_json, occupation, last_login, created_at"

func scanAccount(row interface{ Scan(...any) error }) (models.Account, error) {
	var a models.Account
	var namesJSON string
	err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &namesJSON, &a.Occupation, &a.LastLogin, &a.CreatedAt)
	if err != nil {
		return models.Account{}, err
	}
	if err := json.Unmarshal([]byte(namesJSON), &a.Names); err != nil {
		return models.Account{}, fmt.Errorf("decoding names for account %s: %w", a.ID, err)
	}
	return a, nil
}

func (s *SQLiteStore) findBy(column, value string) (models.Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE "+column+" = ?", value)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	return account, nil
}

// FindByID retrieves a single account by its ID.
func (s *SQLiteStore) FindByID(id string) (models.Account, error) {
	return s.findBy("id", id)
}

// FindByEmail retrieves a single account by its email.
func (s *SQLiteStore) FindByEmail(email string) (models.Account, error) {
	return s.findBy("email", email)
}

// FindByUsername retrieves a single account by its username.
func (s *SQLiteStore) FindByUsername(username string) (models.Account, error) {
	return s.findBy("username", username)
}

// FindAll retrieves every account, oldest first.
func (s *SQLiteStore) FindAll() ([]models.Account, error) {
	rows, err := s.db.Query("SELECT " + accountColumns + " FROM accounts ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Insert persists a new account. Email or username collisions surface as
// *UniquenessError listing every violated field.
func (s *SQLiteStore) Insert(account models.Account) error {
	namesJSON, err := json.Marshal(orEmpty(account.Names))
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"INSERT INTO accounts (id, email, username, password_hash, names_json, occupation, last_login) VALUES (?, ?, ?, ?, ?, ?, ?)",
		account.ID, account.Email, account.Username, account.PasswordHash, string(namesJSON), account.Occupation, account.LastLogin,
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return s.uniquenessError(account)
		}
		return err
	}
	return nil
}

// Update rewrites the full account record. Collisions are reported the same
// way as on Insert.
func (s *SQLiteStore) Update(account models.Account) error {
	namesJSON, err := json.Marshal(orEmpty(account.Names))
	if err != nil {
		return err
	}

	res, err := s.db.Exec(
		"UPDATE accounts SET email = ?, username = ?, password_hash = ?, names_json = ?, occupation = ?, last_login = ? WHERE id = ?",
		account.Email, account.Username, account.PasswordHash, string(namesJSON), account.Occupation, account.LastLogin, account.ID,
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return s.uniquenessError(account)
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account by ID. Deleting is terminal.
func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// uniquenessError enumerates which unique fields of the candidate collide
// with a different existing account. SQLite reports only the first violated
// constraint, so after a failed write both unique columns are probed to build
// the complete violation list.
func (s *SQLiteStore) uniquenessError(candidate models.Account) error {
	uerr := &UniquenessError{}

	if existing, err := s.FindByEmail(candidate.Email); err == nil && existing.ID != candidate.ID {
		uerr.Violations = append(uerr.Violations, FieldViolation{Field: "email", Value: candidate.Email})
	}
	if existing, err := s.FindByUsername(candidate.Username); err == nil && existing.ID != candidate.ID {
		uerr.Violations = append(uerr.Violations, FieldViolation{Field: "username", Value: candidate.Username})
	}

	if len(uerr.Violations) == 0 {
		// The colliding row vanished between the failed write and the probe.
		return fmt.Errorf("uniqueness constraint failed for account %s", candidate.ID)
	}
	return uerr
}

func isUniqueConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func orEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
