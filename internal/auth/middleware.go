package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/models"
	"github.com/ecxhq/identity-be/internal/store"
)

type contextKey string

const accountContextKey = contextKey("account")

// AccountFromContext returns the account the access gate attached to the
// request context.
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(models.Account)
	return account, ok
}

// RequireAccount gates protected account routes. It resolves the subject
// account from the {id} path parameter, verifies the bearer token, and admits
// the request only when the token's email claim matches the resolved account.
// A token issued for one account can therefore never be replayed against
// another account's path. The admitted account rides on the request context.
//
// Token problems beyond expiry are reported with one generic message on
// purpose; the response must not describe what exactly was wrong with the
// credential.
func RequireAccount(accounts store.AccountStore, tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				rejectWith(w, http.StatusBadRequest, "Please pass a valid id in the URL")
				return
			}

			account, err := accounts.FindByID(id)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					rejectWith(w, http.StatusNotFound, fmt.Sprintf("User with id: %s, not found!", id))
					return
				}
				log.Error().Err(err).Str("account_id", id).Msg("Access gate failed to resolve account")
				rejectWith(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				rejectWith(w, http.StatusUnauthorized, "Invalid Request")
				return
			}

			email, err := tokens.Verify(tokenStr)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					rejectWith(w, http.StatusUnauthorized, "Session expired, please login again")
					return
				}
				rejectWith(w, http.StatusUnauthorized, "Invalid Request")
				return
			}

			// A valid token whose claim names a different account is treated
			// exactly like a failed verification.
			if email != account.Email {
				rejectWith(w, http.StatusUnauthorized, "Invalid Request")
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func rejectWith(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
