package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the fixed bcrypt work factor. Stored hashes embed it along with
// the salt, so it can be raised later without invalidating old hashes.
const hashCost = 10

// HashPassword derives a storable one-way hash from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A mismatch
// is never an error, just false. bcrypt's own comparison is constant-time.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
