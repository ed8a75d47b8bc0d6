// internal/api/handler/mocks_test.go
package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wallet-ledger/internal/auth"
	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/service"
)

// MockWalletService is a mock implementation of service.WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Deposit(ctx context.Context, userID int64, amount domain.Money) (*domain.Wallet, *domain.Transaction, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockWalletService) Transfer(ctx context.Context, senderID int64, receiverUsername string, amount domain.Money) (*service.TransferResult, error) {
	args := m.Called(ctx, senderID, receiverUsername, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferResult), args.Error(1)
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, userID int64, query service.TransactionQuery) (*service.TransactionPage, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransactionPage), args.Error(1)
}

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, email, password string) (*domain.User, *domain.Wallet, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*domain.Wallet), args.Error(2)
}

func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID int64) (auth.TokenPair, error) {
	args := m.Called(userID)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func moneyIs(expected string) interface{} {
	return mock.MatchedBy(func(m domain.Money) bool { return m.String() == expected })
}
