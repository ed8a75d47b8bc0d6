// internal/api/handler/auth.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"wallet-ledger/internal/auth"
	"wallet-ledger/internal/service"
)

// TokenIssuer creates and rotates bearer tokens.
type TokenIssuer interface {
	Issue(userID int64) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}

// AuthHandler handles registration and token endpoints.
type AuthHandler struct {
	responder
	accounts service.AccountService
	tokens   TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts service.AccountService, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		accounts:  accounts,
		tokens:    tokens,
	}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenRequest represents the request body for obtaining tokens.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request body for rotating tokens.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Register creates a user together with its empty wallet.
// POST /api/users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	validationErr, err := decodeAndValidate(w, r, &req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if validationErr != nil {
		h.respondWithValidation(w, validationErr)
		return
	}

	user, wallet, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "wallet_id", wallet.ID)
	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"balance":  wallet.Balance,
	})
}

// ObtainToken exchanges credentials for an access/refresh pair.
// POST /api/token
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	validationErr, err := decodeAndValidate(w, r, &req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if validationErr != nil {
		h.respondWithValidation(w, validationErr)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	pair, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, pair)
}

// RefreshToken rotates a refresh token into a new pair.
// POST /api/token/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	validationErr, err := decodeAndValidate(w, r, &req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if validationErr != nil {
		h.respondWithValidation(w, validationErr)
		return
	}

	pair, err := h.tokens.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, pair)
}
