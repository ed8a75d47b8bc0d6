// internal/service/transaction_query.go
package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/util"
)

// DateLayout is the only accepted format for query dates.
const DateLayout = "2006-01-02"

// TransactionQuery holds the raw listing parameters. Empty dates are
// unbounded; both bounds are inclusive UTC dates. Limit 0 returns everything.
type TransactionQuery struct {
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// TransactionPage is one page of a user's history, newest first.
type TransactionPage struct {
	Items      []domain.Transaction
	TotalCount int64
	Limit      int
	Offset     int
}

// ListTransactions returns the transactions where the user is sender or receiver.
func (s *walletService) ListTransactions(ctx context.Context, userID int64, query TransactionQuery) (*TransactionPage, error) {
	filter, err := query.toFilter(userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	items, total, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: failed to retrieve transaction history: %w", err)
	}

	return &TransactionPage{
		Items:      items,
		TotalCount: total,
		Limit:      query.Limit,
		Offset:     query.Offset,
	}, nil
}

func (q TransactionQuery) toFilter(userID int64) (domain.TransactionFilter, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return domain.TransactionFilter{}, fmt.Errorf("%w: limit and offset must not be negative", util.ErrInvalidInput)
	}

	filter := domain.TransactionFilter{UserID: userID, Offset: q.Offset}
	if q.Limit > 0 {
		limit := q.Limit
		filter.Limit = &limit
	}

	if q.StartDate != "" {
		start, err := parseDate("start_date", q.StartDate)
		if err != nil {
			return domain.TransactionFilter{}, err
		}
		filter.Since = &start
	}
	if q.EndDate != "" {
		end, err := parseDate("end_date", q.EndDate)
		if err != nil {
			return domain.TransactionFilter{}, err
		}
		// The end date is inclusive, so the bound is the following midnight.
		until := end.AddDate(0, 0, 1)
		filter.Until = &until
	}
	return filter, nil
}

func parseDate(param, value string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &util.DateFormatError{Param: param, Value: value}
	}
	return date, nil
}
