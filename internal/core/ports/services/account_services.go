package services

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// AccountReaderSvc defines read operations for wallet accounts
type AccountReaderSvc interface {
	// GetAccount returns the account, opening an empty wallet on first access.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountPinSvc manages the transaction PIN
type AccountPinSvc interface {
	// SetPin stores a bcrypt hash of a 4-digit PIN.
	SetPin(ctx context.Context, accountID string, pin string) error

	// VerifyPin checks a PIN against the stored hash. It returns apperrors.ErrUnauthorized on mismatch.
	VerifyPin(ctx context.Context, accountID string, pin string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountPinSvc
}
