// cmd/seed/main.go
//
// Seed populates the database with demo users, wallets and ledger entries.
// Every movement goes through the wallet service, so balances and the
// transaction log stay consistent; only the entry timestamps are spread over
// the last 30 days.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	app "wallet-ledger/internal"
	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"
)

const defaultPassword = "password123"

type seedUser struct {
	id       int64
	username string
}

func main() {
	numUsers := flag.Int("users", 10, "number of users to create")
	perUser := flag.Int("tx", 5, "random movements per user")
	prefix := flag.String("prefix", "user", "username prefix")
	flag.Parse()

	// The clock is moved before every movement so entries land on past days.
	at := time.Now().UTC()
	clock := func() time.Time { return at }

	ctx := context.Background()
	application := app.NewApplication()
	if err := application.Initialize(ctx, service.WithClock(clock)); err != nil {
		util.GetLogger().Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Shutdown(ctx) }()
	logger := application.Logger

	users := make([]seedUser, 0, *numUsers)
	for i := 0; i < *numUsers; i++ {
		username := fmt.Sprintf("%s%d_%s", *prefix, i, uuid.NewString()[:8])
		user, _, err := application.AccountService.Register(ctx, username, username+"@example.com", defaultPassword)
		if err != nil {
			logger.Error("Failed to register user", "username", username, "error", err)
			os.Exit(1)
		}

		at = backdate()
		opening := randomAmount(10000, 100000)
		wallet, _, err := application.WalletService.Deposit(ctx, user.ID, opening)
		if err != nil {
			logger.Error("Failed to fund wallet", "username", username, "error", err)
			os.Exit(1)
		}
		users = append(users, seedUser{id: user.ID, username: username})
		logger.Info("User created", "username", username, "balance", wallet.Balance.String())
	}

	for _, u := range users {
		for j := 0; j < *perUser; j++ {
			at = backdate()
			if rand.IntN(2) == 0 || len(users) < 2 {
				deposit(ctx, application.WalletService, logger, u)
				continue
			}
			transfer(ctx, application.WalletService, logger, u, users)
		}
	}

	logger.Info("Seeding complete", "users", len(users), "password", defaultPassword)
}

func deposit(ctx context.Context, svc service.WalletService, logger *slog.Logger, u seedUser) {
	amount := randomAmount(1000, 20000)
	if _, _, err := svc.Deposit(ctx, u.id, amount); err != nil {
		logger.Error("Deposit failed", "username", u.username, "error", err)
		return
	}
	logger.Info("Deposit", "username", u.username, "amount", amount.String())
}

func transfer(ctx context.Context, svc service.WalletService, logger *slog.Logger, from seedUser, users []seedUser) {
	to := users[rand.IntN(len(users))]
	for to.id == from.id {
		to = users[rand.IntN(len(users))]
	}

	wallet, err := svc.GetBalance(ctx, from.id)
	if err != nil {
		logger.Error("Balance lookup failed", "username", from.username, "error", err)
		return
	}
	maxCents := min(wallet.Balance.Decimal().Shift(domain.MoneyScale).IntPart()/2, 15000)
	if maxCents < 500 {
		return
	}
	amount := randomAmount(500, maxCents)

	if _, err := svc.Transfer(ctx, from.id, to.username, amount); err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			logger.Warn("Insufficient funds for transfer", "username", from.username, "amount", amount.String())
			return
		}
		logger.Error("Transfer failed", "username", from.username, "error", err)
		return
	}
	logger.Info("Transfer", "from", from.username, "to", to.username, "amount", amount.String())
}

// randomAmount returns a uniformly random amount in [minCents, maxCents] cents.
func randomAmount(minCents, maxCents int64) domain.Money {
	cents := minCents + rand.Int64N(maxCents-minCents+1)
	m, err := domain.NewMoney(decimal.New(cents, -domain.MoneyScale))
	if err != nil {
		panic(err) // bounds above are far below the money limit
	}
	return m
}

func backdate() time.Time {
	return time.Now().UTC().Add(-time.Duration(1+rand.IntN(30)) * 24 * time.Hour)
}
