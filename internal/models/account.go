package models

import "time"

// Account represents a registered identity in the system.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Names        []string  `json:"names"`
	Occupation   string    `json:"occupation"`
	LastLogin    string    `json:"lastLogin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountSummary is the projection returned after registration, login and
// update. It carries nothing sensitive.
type AccountSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Summary returns the public projection of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Email: a.Email, Username: a.Username}
}
