package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	ti := NewTokenIssuer([]byte("super-secret"), time.Hour)

	token, err := ti.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ti.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestVerifyExpired(t *testing.T) {
	ti := NewTokenIssuer([]byte("super-secret"), -time.Minute)

	token, err := ti.Issue("a@x.com")
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("right-secret"), time.Hour)
	verifier := NewTokenIssuer([]byte("wrong-secret"), time.Hour)

	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	ti := NewTokenIssuer([]byte("super-secret"), time.Hour)

	for _, tokenStr := range []string{"", "garbage", "not.a.jwt"} {
		_, err := ti.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tokenStr)
	}
}

func TestVerifyMissingExpiry(t *testing.T) {
	secret := []byte("super-secret")
	ti := NewTokenIssuer(secret, time.Hour)

	// A signed token without an exp claim must not verify.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@x.com"})
	token, err := raw.SignedString(secret)
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMissingEmailClaim(t *testing.T) {
	secret := []byte("super-secret")
	ti := NewTokenIssuer(secret, time.Hour)

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString(secret)
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	ti := NewTokenIssuer([]byte("super-secret"), time.Hour)

	raw := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ti.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
