// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"wallet-ledger/internal/util" // For custom errors
)

// DefaultTimeout bounds every request handled by the router.
const DefaultTimeout = 30 * time.Second

// responder carries the JSON helpers shared by all handlers.
type responder struct {
	logger *slog.Logger
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h responder) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var dateErr *util.DateFormatError
	switch {
	case errors.As(err, &dateErr):
		statusCode = http.StatusBadRequest
		message = dateErr.Error()
	case util.IsError(err, util.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = "Amount must be a positive number with at most 2 decimal places"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
		message = "Insufficient funds"
	case util.IsError(err, util.ErrSelfTransfer):
		statusCode = http.StatusBadRequest
		message = "Cannot transfer to yourself"
	case util.IsError(err, util.ErrReceiverNotFound):
		statusCode = http.StatusNotFound
		message = "Receiver not found"
	case util.IsError(err, util.ErrWalletNotFound):
		statusCode = http.StatusNotFound
		message = "Wallet not found"
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Username already taken"
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid username or password"
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Invalid or expired token"
	case util.IsError(err, util.ErrTransient):
		statusCode = http.StatusServiceUnavailable
		message = "Temporarily unavailable, please retry"
		w.Header().Set("Retry-After", "1")
		h.logger.Warn("Transient store failure", "error", err, "request_id", middleware.GetReqID(r.Context()))
	default:
		h.logger.Error("Unhandled service error", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}

	h.respondWithJSON(w, statusCode, errorResponse{Error: message})
}

// respondWithMutationError is respondWithError for deposit and transfer. A
// missing wallet there means a registered user was never provisioned one.
func (h responder) respondWithMutationError(w http.ResponseWriter, r *http.Request, err error) {
	if util.IsError(err, util.ErrWalletNotFound) {
		h.logger.Error("Integrity violation: wallet missing for user", "error", err, "request_id", middleware.GetReqID(r.Context()))
		h.respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}
	h.respondWithError(w, r, err)
}

// respondWithValidation reports struct validation failures field by field.
func (h responder) respondWithValidation(w http.ResponseWriter, err error) {
	h.respondWithJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Validation error",
		Details: formatValidationError(err),
	})
}
