// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/pkg/db"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// relatedTransactions selects the ids a user took part in. The UNION of the
// sender and receiver branches lets each use its own (user, time) index and
// counts a self-directed deposit once.
const relatedTransactions = `
	WITH related AS (
		SELECT id FROM transactions
		WHERE sender_id = $1
		  AND ($2::timestamptz IS NULL OR transaction_time >= $2)
		  AND ($3::timestamptz IS NULL OR transaction_time < $3)
		UNION
		SELECT id FROM transactions
		WHERE receiver_id = $1
		  AND ($2::timestamptz IS NULL OR transaction_time >= $2)
		  AND ($3::timestamptz IS NULL OR transaction_time < $3)
	)`

// CreateTransaction inserts a new transaction record into the database using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (sender_id, receiver_id, amount, type, transaction_time)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.SenderID,
		transaction.ReceiverID,
		transaction.Amount,
		transaction.Type,
		transaction.Timestamp,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", db.Classify(err))
	}
	return nil
}

// GetTransactionsByUserID retrieves a page of transactions where the user is sender or receiver.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	// Query 1: Get the page, newest first with id as the tie-breaker
	query := relatedTransactions + `
	SELECT t.id, t.sender_id, t.receiver_id, t.amount, t.type, t.transaction_time,
	       su.username AS sender_username, ru.username AS receiver_username
	FROM related r
	JOIN transactions t ON t.id = r.id
	JOIN users su ON su.id = t.sender_id
	JOIN users ru ON ru.id = t.receiver_id
	ORDER BY t.transaction_time DESC, t.id DESC
	LIMIT $4 OFFSET $5`
	err := q.SelectContext(ctx, &transactions, query, filter.UserID, filter.Since, filter.Until, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", filter.UserID, db.Classify(err))
	}

	// Query 2: Get the total count of matching transactions
	var totalCount int64
	countQuery := relatedTransactions + `
	SELECT COUNT(*) FROM related`
	err = q.GetContext(ctx, &totalCount, countQuery, filter.UserID, filter.Since, filter.Until)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for user %d: %w", filter.UserID, db.Classify(err))
	}

	for i := range transactions {
		transactions[i].Timestamp = transactions[i].Timestamp.UTC()
	}
	return transactions, totalCount, nil
}
