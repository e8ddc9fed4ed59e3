package services

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc defines balance-mutating operations
type LedgerWriterSvc interface {
	// Apply validates and atomically applies one entry, plus the reward side entry
	// for qualifying kinds.
	Apply(ctx context.Context, accountID string, kind domain.Kind, amount decimal.Decimal, meta domain.Metadata) (*domain.ApplyResult, error)

	// SubmitTransaction is the wallet API entry point: it checks the PIN where the
	// kind requires one and then calls Apply.
	SubmitTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest) (*domain.ApplyResult, error)
}

// LedgerReaderSvc defines read operations over an account's entries
type LedgerReaderSvc interface {
	// ListTransactions returns the account's entries newest first.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
