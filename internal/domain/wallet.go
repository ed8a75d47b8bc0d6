// internal/domain/wallet.go
package domain

import (
	"fmt"
	"time"

	"wallet-ledger/internal/util"
)

// Wallet represents a user's wallet. Every user owns exactly one.
type Wallet struct {
	ID        int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	UserID    int64     `db:"user_id" json:"user_id"`       // Foreign key to User, unique
	Balance   Money     `db:"balance" json:"balance"`       // NUMERIC(12, 2) in DB, never negative
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewWallet creates a new Wallet instance with a zero balance.
func NewWallet(userID int64) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Credit increases the balance by amount. It only mutates the value in memory.
func (w *Wallet) Credit(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("credit: %w: must be greater than zero", util.ErrInvalidAmount)
	}
	balance, err := w.Balance.Add(amount)
	if err != nil {
		return fmt.Errorf("credit wallet %d: %w", w.ID, err)
	}
	w.Balance = balance
	return nil
}

// Debit decreases the balance by amount, refusing to go below zero.
func (w *Wallet) Debit(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("debit: %w: must be greater than zero", util.ErrInvalidAmount)
	}
	if w.Balance.LessThan(amount) {
		return util.ErrInsufficientFunds
	}
	balance, err := w.Balance.Sub(amount)
	if err != nil {
		return fmt.Errorf("debit wallet %d: %w", w.ID, err)
	}
	w.Balance = balance
	return nil
}
