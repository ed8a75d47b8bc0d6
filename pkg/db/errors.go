// pkg/db/errors.go
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"wallet-ledger/internal/util"
)

// PostgreSQL SQLSTATE codes the ledger reacts to.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

const balanceConstraint = "wallet_balance_non_negative"

// Classify maps driver errors from lib/pq or pgx onto the application error
// taxonomy. Unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", util.ErrTransient, err)
	}

	code, constraint := pgErrorDetails(err)
	switch code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
		return fmt.Errorf("%w: %w", util.ErrTransient, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", util.ErrDuplicateEntry, err)
	case codeCheckViolation:
		if constraint == balanceConstraint {
			return fmt.Errorf("%w: %w", util.ErrInsufficientFunds, err)
		}
	}
	return err
}

func pgErrorDetails(err error) (code, constraint string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
