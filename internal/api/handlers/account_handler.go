package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/auth"
	"github.com/ecxhq/identity-be/internal/models"
	"github.com/ecxhq/identity-be/internal/services"
)

// AccountHandler handles HTTP requests for registration, login and account
// management.
type AccountHandler struct {
	service services.AccountServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// accountResponse is the body returned by signup, login and update.
type accountResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

// Register handles new account registration.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.service.Register(input)
	if err != nil {
		var missing *services.MissingFieldError
		var conflict *services.ConflictError
		switch {
		case errors.As(err, &missing):
			respondMessage(w, http.StatusBadRequest, missing.Message)
		case errors.As(err, &conflict):
			respondMessage(w, http.StatusConflict, conflict.Error())
		default:
			log.Error().Err(err).Str("email", input.Email).Msg("Failed to register account")
			respondMessage(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, accountResponse{
		Message:  "User successfully created!",
		ID:       summary.ID,
		Email:    summary.Email,
		Username: summary.Username,
	})
}

// Login handles authentication and session token issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, token, err := h.service.Authenticate(input)
	if err != nil {
		var missing *services.MissingFieldError
		var notFound *services.NotFoundError
		switch {
		case errors.As(err, &missing):
			respondMessage(w, http.StatusBadRequest, missing.Message)
		case errors.As(err, &notFound):
			respondMessage(w, http.StatusUnauthorized, notFound.Error())
		case errors.Is(err, services.ErrMissingIdentifier), errors.Is(err, services.ErrInvalidCredentials):
			respondMessage(w, http.StatusUnauthorized, err.Error())
		default:
			log.Error().Err(err).Str("email", input.Email).Msg("Failed login attempt")
			respondMessage(w, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	respondJSON(w, http.StatusOK, accountResponse{
		Message:  "Login successful!",
		ID:       summary.ID,
		Email:    summary.Email,
		Username: summary.Username,
		Token:    token,
	})
}

// GetAll returns the public projection of every account.
func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list accounts")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": accounts})
}

// Get returns the account the access gate resolved for this request.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Account missing from gated request context")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Update applies a partial update to the gated account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Account missing from gated request context")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var input services.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.service.UpdateAccount(account, input)
	if err != nil {
		var conflict *services.ConflictError
		switch {
		case errors.Is(err, services.ErrNoUpdateFields):
			respondMessage(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &conflict):
			respondMessage(w, http.StatusConflict, conflict.Error())
		default:
			log.Error().Err(err).Str("account_id", account.ID).Msg("Failed to update account")
			respondMessage(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	respondJSON(w, http.StatusOK, accountResponse{
		Message:  "Update Successful",
		ID:       summary.ID,
		Email:    summary.Email,
		Username: summary.Username,
	})
}

// Delete permanently removes the gated account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		log.Error().Msg("Account missing from gated request context")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.service.DeleteAccount(account); err != nil {
		log.Error().Err(err).Str("account_id", account.ID).Msg("Failed to delete account")
		respondMessage(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	respondMessage(w, http.StatusOK, fmt.Sprintf("Successfully Deleted user with id: %s", account.ID))
}
