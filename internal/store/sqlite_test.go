package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecxhq/identity-be/internal/database"
	"github.com/ecxhq/identity-be/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewSQLiteStore(db)
}

func testAccount(id, email, username string) models.Account {
	return models.Account{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Names:        []string{"Ada", "Lovelace"},
		Occupation:   "engineer",
		LastLogin:    "01-01-2026-09:00am",
	}
}

func TestInsertAndLookups(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	byID, err := s.FindByID("id-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
	assert.Equal(t, []string{"Ada", "Lovelace"}, byID.Names)

	byEmail, err := s.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", byEmail.ID)

	byUsername, err := s.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", byUsername.ID)
}

func TestLookupNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByID("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByEmail("nope@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByUsername("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	err := s.Insert(testAccount("id-2", "a@x.com", "bob"))
	var uerr *UniquenessError
	require.ErrorAs(t, err, &uerr)
	require.Len(t, uerr.Violations, 1)
	assert.Equal(t, FieldViolation{Field: "email", Value: "a@x.com"}, uerr.Violations[0])
}

func TestInsertDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	err := s.Insert(testAccount("id-2", "b@x.com", "alice"))
	var uerr *UniquenessError
	require.ErrorAs(t, err, &uerr)
	require.Len(t, uerr.Violations, 1)
	assert.Equal(t, "username", uerr.Violations[0].Field)
}

func TestInsertDuplicateBothFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	err := s.Insert(testAccount("id-2", "a@x.com", "alice"))
	var uerr *UniquenessError
	require.ErrorAs(t, err, &uerr)
	require.Len(t, uerr.Violations, 2)
	assert.Equal(t, "email", uerr.Violations[0].Field)
	assert.Equal(t, "username", uerr.Violations[1].Field)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	account, err := s.FindByID("id-1")
	require.NoError(t, err)
	account.Occupation = "researcher"
	account.Names = nil
	require.NoError(t, s.Update(account))

	updated, err := s.FindByID("id-1")
	require.NoError(t, err)
	assert.Equal(t, "researcher", updated.Occupation)
	assert.Empty(t, updated.Names)
}

func TestUpdateKeepsOwnUniqueValues(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	// Re-writing the record with its own email/username is not a collision.
	account, err := s.FindByID("id-1")
	require.NoError(t, err)
	assert.NoError(t, s.Update(account))
}

func TestUpdateCollision(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))
	require.NoError(t, s.Insert(testAccount("id-2", "b@x.com", "bob")))

	account, err := s.FindByID("id-2")
	require.NoError(t, err)
	account.Email = "a@x.com"

	err = s.Update(account)
	var uerr *UniquenessError
	require.ErrorAs(t, err, &uerr)
	require.Len(t, uerr.Violations, 1)
	assert.Equal(t, FieldViolation{Field: "email", Value: "a@x.com"}, uerr.Violations[0])
}

func TestUpdateMissingAccount(t *testing.T) {
	s := newTestStore(t)
	err := s.Update(testAccount("ghost", "g@x.com", "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))

	require.NoError(t, s.Delete("id-1"))
	_, err := s.FindByID("id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete("id-1"), ErrNotFound)
}

func TestFindAll(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Insert(testAccount("id-1", "a@x.com", "alice")))
	require.NoError(t, s.Insert(testAccount("id-2", "b@x.com", "bob")))

	accounts, err := s.FindAll()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
