// internal/service/account_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/db"
)

// AccountService registers users and checks their credentials.
type AccountService interface {
	// Register creates the user and provisions its zero-balance wallet atomically.
	Register(ctx context.Context, username, email, password string) (*domain.User, *domain.Wallet, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type accountService struct {
	tx         txRunner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	settings   settings
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	opts ...Option,
) AccountService {
	s := applyOptions(opts)
	return &accountService{
		tx: txRunner{
			dbBeginner: dbBeginner,
			beginTx:    beginTx,
			commitTx:   commitTx,
			rollbackTx: rollbackTx,
			timeout:    s.txTimeout,
		},
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		settings:   s,
	}
}

func (s *accountService) Register(ctx context.Context, username, email, password string) (*domain.User, *domain.Wallet, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("register: %w: username and password are required", util.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.settings.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w: %v", util.ErrInvalidInput, err)
	}

	var (
		user   *domain.User
		wallet *domain.Wallet
	)
	err = s.tx.run(ctx, func(ctx context.Context, q repository.DBExecutor) error {
		_, err := s.userRepo.GetUserByUsername(ctx, q, username)
		if err == nil {
			return fmt.Errorf("user with username '%s' already exists: %w", username, util.ErrDuplicateEntry)
		}
		if !errors.Is(err, util.ErrNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		user = domain.NewUser(username, email, string(hash))
		if err := s.userRepo.CreateUser(ctx, q, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		wallet = domain.NewWallet(user.ID)
		if err := s.walletRepo.CreateWallet(ctx, q, wallet); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w", err)
	}
	return user, wallet, nil
}

// Authenticate returns the user when password matches; any mismatch,
// including an unknown username, is ErrInvalidCredentials.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return user, nil
}
