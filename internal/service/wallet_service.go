// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"slices"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/db"
)

// WalletService defines the balance-mutation and ledger query operations.
// Every method takes the authenticated user's ID explicitly.
type WalletService interface {
	Deposit(ctx context.Context, userID int64, amount domain.Money) (*domain.Wallet, *domain.Transaction, error)
	Transfer(ctx context.Context, senderID int64, receiverUsername string, amount domain.Money) (*TransferResult, error)
	GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, userID int64, query TransactionQuery) (*TransactionPage, error)
}

// TransferResult is the outcome of a committed transfer.
type TransferResult struct {
	Transaction    *domain.Transaction
	SenderWallet   *domain.Wallet
	ReceiverWallet *domain.Wallet
}

// walletService implements the WalletService interface.
type walletService struct {
	tx              txRunner
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	settings        settings
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	opts ...Option,
) WalletService {
	s := applyOptions(opts)
	return &walletService{
		tx: txRunner{
			dbBeginner: dbBeginner,
			beginTx:    beginTx,
			commitTx:   commitTx,
			rollbackTx: rollbackTx,
			timeout:    s.txTimeout,
		},
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		settings:        s,
	}
}

// Deposit credits amount to the user's own wallet and records a DEPOSIT entry.
func (s *walletService) Deposit(ctx context.Context, userID int64, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("deposit: %w: must be greater than zero", util.ErrInvalidAmount)
	}

	var (
		wallet      *domain.Wallet
		transaction *domain.Transaction
	)
	err := s.tx.run(ctx, func(ctx context.Context, q repository.DBExecutor) error {
		locked, err := s.walletRepo.LockWalletByUserID(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("failed to lock wallet of user %d: %w", userID, err)
		}
		if err := locked.Credit(amount); err != nil {
			return err
		}
		if err := s.walletRepo.UpdateWalletBalance(ctx, q, locked); err != nil {
			return fmt.Errorf("failed to update wallet balance: %w", err)
		}

		entry := domain.NewDeposit(userID, amount, s.settings.now())
		if err := s.transactionRepo.CreateTransaction(ctx, q, entry); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		wallet, transaction = locked, entry
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}
	return wallet, transaction, nil
}

// Transfer moves amount from the sender's wallet to the wallet of the user
// named receiverUsername and records one TRANSFER entry.
func (s *walletService) Transfer(ctx context.Context, senderID int64, receiverUsername string, amount domain.Money) (*TransferResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer: %w: must be greater than zero", util.ErrInvalidAmount)
	}

	receiver, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, receiverUsername)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("transfer: %w: '%s'", util.ErrReceiverNotFound, receiverUsername)
		}
		return nil, fmt.Errorf("transfer: failed to resolve receiver: %w", err)
	}
	if receiver.ID == senderID {
		return nil, fmt.Errorf("transfer: %w", util.ErrSelfTransfer)
	}
	receiverID := receiver.ID

	var result TransferResult
	err = s.tx.run(ctx, func(ctx context.Context, q repository.DBExecutor) error {
		wallets, err := s.lockWallets(ctx, q, senderID, receiverID)
		if err != nil {
			return err
		}
		senderWallet, receiverWallet := wallets[senderID], wallets[receiverID]

		if err := senderWallet.Debit(amount); err != nil {
			return err
		}
		if err := receiverWallet.Credit(amount); err != nil {
			return err
		}

		if err := s.walletRepo.UpdateWalletBalance(ctx, q, senderWallet); err != nil {
			return fmt.Errorf("failed to update source wallet balance: %w", err)
		}
		if err := s.walletRepo.UpdateWalletBalance(ctx, q, receiverWallet); err != nil {
			return fmt.Errorf("failed to update destination wallet balance: %w", err)
		}

		entry := domain.NewTransfer(senderID, receiverID, amount, s.settings.now())
		if err := s.transactionRepo.CreateTransaction(ctx, q, entry); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		result = TransferResult{
			Transaction:    entry,
			SenderWallet:   senderWallet,
			ReceiverWallet: receiverWallet,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	return &result, nil
}

// lockWallets locks the wallets of userIDs in ascending user ID order, so two
// transfers between the same pair in opposite directions can never deadlock.
func (s *walletService) lockWallets(ctx context.Context, q repository.DBExecutor, userIDs ...int64) (map[int64]*domain.Wallet, error) {
	ordered := slices.Clone(userIDs)
	slices.Sort(ordered)

	wallets := make(map[int64]*domain.Wallet, len(ordered))
	for _, id := range slices.Compact(ordered) {
		wallet, err := s.walletRepo.LockWalletByUserID(ctx, q, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock wallet of user %d: %w", id, err)
		}
		wallets[id] = wallet
	}
	return wallets, nil
}

// GetBalance reads the user's wallet without taking locks.
func (s *walletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return wallet, nil
}
