package services

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IdempotencyGuardSvc guarantees an external reference is credited at most once.
type IdempotencyGuardSvc interface {
	// Reserve reports whether an entry with the reference already exists. It creates nothing.
	Reserve(ctx context.Context, externalRef string) (bool, error)

	// TryFinalize credits the entry identified by externalRef if, and only if, it is
	// still unprocessed and the verified amount and currency match it.
	TryFinalize(ctx context.Context, externalRef string, amount decimal.Decimal, currency string, provider domain.ProviderRef) (*domain.FinalizeResult, error)

	// MarkRejected records a failed provider status without crediting.
	MarkRejected(ctx context.Context, externalRef string) error
}

// ReconciliationSvc converges both confirmation paths onto TryFinalize.
type ReconciliationSvc interface {
	// HandleWebhook processes an already-authenticated provider notification.
	HandleWebhook(ctx context.Context, event domain.WebhookEvent) (*domain.ReconcileResult, error)

	// VerifyPayment is the account holder's poll for their own top-up.
	VerifyPayment(ctx context.Context, accountID string, externalRef string) (*domain.ReconcileResult, error)
}

// PaymentInitSvc starts provider top-ups.
type PaymentInitSvc interface {
	// InitPayment records a pending Add Money entry under a fresh reference.
	InitPayment(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.PendingPayment, error)
}

// PendingSweeperSvc expires stale pending top-ups.
type PendingSweeperSvc interface {
	// SweepOnce marks pending entries older than the configured TTL as failed.
	SweepOnce(ctx context.Context) (int64, error)

	// Run sweeps on every interval tick until ctx is done.
	Run(ctx context.Context)
}
