package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountPin(ctx context.Context, accountID string, pinHash string, now time.Time) error {
	args := m.Called(ctx, accountID, pinHash, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ExternalRefExists(ctx context.Context, externalRef string) (bool, error) {
	args := m.Called(ctx, externalRef)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumPointsByAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ApplyEntry(ctx context.Context, entry domain.LedgerEntry, reward *domain.LedgerEntry) (*domain.ApplyResult, error) {
	args := m.Called(ctx, entry, reward)
	if rf, ok := args.Get(0).(func(context.Context, domain.LedgerEntry, *domain.LedgerEntry) *domain.ApplyResult); ok {
		return rf(ctx, entry, reward), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplyResult), args.Error(1)
}

func (m *MockLedgerRepository) CreatePendingEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if rf, ok := args.Get(0).(func(context.Context, domain.LedgerEntry) *domain.LedgerEntry); ok {
		return rf(ctx, entry), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FinalizeExternalEntry(ctx context.Context, externalRef string, provider domain.ProviderRef, decide portsrepo.FinalizeDecision) (*domain.FinalizeResult, error) {
	args := m.Called(ctx, externalRef, provider, decide)
	if rf, ok := args.Get(0).(func(string, domain.ProviderRef, portsrepo.FinalizeDecision) (*domain.FinalizeResult, error)); ok {
		return rf(externalRef, provider, decide)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizeResult), args.Error(1)
}

func (m *MockLedgerRepository) MarkExternalStatus(ctx context.Context, externalRef string, status domain.ExternalStatus) (bool, error) {
	args := m.Called(ctx, externalRef, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) ExpirePendingEntries(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock PaymentVerifier ---
type MockPaymentVerifier struct {
	mock.Mock
}

var _ gateways.PaymentVerifier = (*MockPaymentVerifier)(nil)

func (m *MockPaymentVerifier) VerifyByReference(ctx context.Context, externalRef string) (*domain.Verification, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verification), args.Error(1)
}

func (m *MockPaymentVerifier) VerifyByID(ctx context.Context, providerID string) (*domain.Verification, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verification), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ gateways.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
