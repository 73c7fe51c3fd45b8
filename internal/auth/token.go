package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired signals a well-formed token whose validity window has
	// passed. The holder must authenticate again.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other verification failure: bad signature,
	// malformed token, wrong algorithm, missing claims.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims defines the JWT claims structure. The email is the single identity
// claim a session token carries.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies signed session tokens. The signing secret
// and validity window are injected once at construction; nothing is read from
// ambient process state.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given symmetric secret and
// token lifetime.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue creates a signed token carrying the account email claim, valid for
// the issuer's TTL from now.
func (ti *TokenIssuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify checks the token's signature and expiry and returns the embedded
// email claim. Expiry is distinguished from every other failure so callers
// can tell the holder to log in again.
func (ti *TokenIssuer) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}
