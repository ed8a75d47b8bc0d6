// internal/domain/transaction.go
package domain

import (
	"time"
)

// TransactionType defines the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable record of a completed deposit or transfer.
// For deposits SenderID equals ReceiverID.
type Transaction struct {
	ID         int64           `db:"id" json:"id"`
	SenderID   int64           `db:"sender_id" json:"sender_id"`
	ReceiverID int64           `db:"receiver_id" json:"receiver_id"`
	Amount     Money           `db:"amount" json:"amount"` // Always > 0
	Type       TransactionType `db:"type" json:"transaction_type"`
	Timestamp  time.Time       `db:"transaction_time" json:"timestamp"` // UTC

	// Filled by listing queries only.
	SenderUsername   string `db:"sender_username" json:"sender,omitempty"`
	ReceiverUsername string `db:"receiver_username" json:"receiver,omitempty"`
}

// NewDeposit creates a deposit record for userID.
func NewDeposit(userID int64, amount Money, at time.Time) *Transaction {
	return &Transaction{
		SenderID:   userID,
		ReceiverID: userID,
		Amount:     amount,
		Type:       TransactionTypeDeposit,
		Timestamp:  at.UTC(),
	}
}

// NewTransfer creates a transfer record from senderID to receiverID.
func NewTransfer(senderID, receiverID int64, amount Money, at time.Time) *Transaction {
	return &Transaction{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Type:       TransactionTypeTransfer,
		Timestamp:  at.UTC(),
	}
}

// TransactionFilter selects the ledger entries a user took part in.
// Since is inclusive and Until exclusive; nil means unbounded.
// A nil Limit returns every matching row.
type TransactionFilter struct {
	UserID int64
	Since  *time.Time
	Until  *time.Time
	Limit  *int
	Offset int
}
