package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("secret2", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("secret1", ""))
	assert.False(t, CheckPassword("secret1", "not-a-bcrypt-hash"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	// Each hash embeds a fresh salt.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("secret1", first))
	assert.True(t, CheckPassword("secret1", second))
}
