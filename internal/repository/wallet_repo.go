// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet to the database.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID reads a user's wallet without taking any lock.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// LockWalletByUserID reads a user's wallet and holds a row lock on it
	// until the surrounding transaction ends. q must be a transaction.
	LockWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// UpdateWalletBalance stores the wallet's new balance.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
}
