// internal/service/options.go
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wallet-ledger/internal/repository"
	"wallet-ledger/pkg/db"
)

// DefaultTxTimeout bounds a single store transaction.
const DefaultTxTimeout = 5 * time.Second

type settings struct {
	now        func() time.Time
	txTimeout  time.Duration
	bcryptCost int
}

func defaultSettings() settings {
	return settings{
		now:        func() time.Time { return time.Now().UTC() },
		txTimeout:  DefaultTxTimeout,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Option customizes a service.
type Option func(*settings)

// WithClock replaces the clock used to timestamp ledger entries.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithTxTimeout bounds each store transaction. Zero disables the bound.
func WithTxTimeout(d time.Duration) Option {
	return func(s *settings) { s.txTimeout = d }
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *settings) { s.bcryptCost = cost }
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// txRunner runs a unit of work inside one store transaction using the
// injected begin/commit/rollback functions.
type txRunner struct {
	dbBeginner db.DBTxBeginner
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	timeout    time.Duration
}

// run commits only if fn succeeds; any error leaves the transaction rolled back.
func (r txRunner) run(ctx context.Context, fn func(ctx context.Context, q repository.DBExecutor) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	txController, err := r.beginTx(ctx, r.dbBeginner)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer r.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	if err := fn(ctx, txExecutor); err != nil {
		return err
	}

	if err := r.commitTx(txController); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
