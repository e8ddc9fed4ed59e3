package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account with a zero balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountPin replaces the stored transaction PIN hash.
	UpdateAccountPin(ctx context.Context, accountID string, pinHash string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
