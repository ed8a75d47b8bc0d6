// internal/api/handler/wallet.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"wallet-ledger/internal/api/middleware"
	"wallet-ledger/internal/api/types"
	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util" // For custom errors
)

// Pagination bounds for transaction listing.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	responder
	service service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// DepositRequest represents the request body for deposit.
type DepositRequest struct {
	Amount *domain.Money `json:"amount" validate:"required"`
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	ReceiverUsername string        `json:"receiver_username" validate:"required,max=150"`
	Amount           *domain.Money `json:"amount" validate:"required"`
}

// currentUser returns the authenticated user ID or writes a 401.
func (h *WalletHandler) currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, r, util.ErrUnauthorized)
		return 0, false
	}
	return userID, true
}

// GetWalletBalance handles the get wallet balance request.
// GET /api/wallet/balance
func (h *WalletHandler) GetWalletBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	wallet, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"balance": wallet.Balance,
	})
}

// Deposit handles the deposit money request.
// POST /api/wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req DepositRequest
	validationErr, err := decodeAndValidate(w, r, &req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if validationErr != nil {
		h.respondWithValidation(w, validationErr)
		return
	}

	wallet, transaction, err := h.service.Deposit(r.Context(), userID, *req.Amount)
	if err != nil {
		h.respondWithMutationError(w, r, err)
		return
	}

	h.logger.Info("Deposit committed", "user_id", userID, "transaction_id", transaction.ID, "amount", transaction.Amount.String())
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Deposit successful",
		"new_balance":    wallet.Balance,
		"transaction_id": transaction.ID,
	})
}

// Transfer handles the transfer money request.
// POST /api/transactions/transfer
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req TransferRequest
	validationErr, err := decodeAndValidate(w, r, &req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if validationErr != nil {
		h.respondWithValidation(w, validationErr)
		return
	}

	result, err := h.service.Transfer(r.Context(), userID, req.ReceiverUsername, *req.Amount)
	if err != nil {
		h.respondWithMutationError(w, r, err)
		return
	}

	h.logger.Info("Transfer committed",
		"transaction_id", result.Transaction.ID,
		"sender_id", result.Transaction.SenderID,
		"receiver_id", result.Transaction.ReceiverID,
		"amount", result.Transaction.Amount.String(),
	)
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Transfer successful",
		"transaction_id":   result.Transaction.ID,
		"sender_balance":   result.SenderWallet.Balance,
		"receiver_balance": result.ReceiverWallet.Balance,
	})
}

// ListTransactions handles the transaction history request.
// GET /api/transactions?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&limit=10&offset=0
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	// Parse query parameters for pagination
	params := r.URL.Query()
	limit, err := strconv.Atoi(params.Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultPageSize // Default limit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset, err := strconv.Atoi(params.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	page, err := h.service.ListTransactions(r.Context(), userID, service.TransactionQuery{
		StartDate: params.Get("start_date"),
		EndDate:   params.Get("end_date"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       page.Items,
		Limit:      page.Limit,
		Offset:     page.Offset,
		TotalCount: page.TotalCount,
	})
}
