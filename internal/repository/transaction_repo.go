// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// TransactionRepository defines the interface for the append-only transaction log.
type TransactionRepository interface {
	// CreateTransaction appends a transaction record and assigns its ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByUserID returns the page of transactions selected by filter,
	// newest first, together with the total number of matching rows.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
}
