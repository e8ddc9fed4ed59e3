package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// idempotencyGuard makes external credits at-most-once per reference. The store
// supplies the per-entry lock; the decision about what to do under it lives here.
type idempotencyGuard struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewIdempotencyGuard creates the guard over the ledger store.
func NewIdempotencyGuard(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.IdempotencyGuardSvc {
	return &idempotencyGuard{ledgerRepo: ledgerRepo}
}

var _ portssvc.IdempotencyGuardSvc = (*idempotencyGuard)(nil)

func (g *idempotencyGuard) Reserve(ctx context.Context, externalRef string) (bool, error) {
	if externalRef == "" {
		return false, fmt.Errorf("%w: external reference is required", apperrors.ErrValidation)
	}
	exists, err := g.ledgerRepo.ExternalRefExists(ctx, externalRef)
	if err != nil {
		return false, fmt.Errorf("failed to check external reference %s: %w", externalRef, err)
	}
	return exists, nil
}

// FinalizeCheck is the decision TryFinalize runs under the entry lock.
func FinalizeCheck(amount decimal.Decimal, currency string) portsrepo.FinalizeDecision {
	return func(entry domain.LedgerEntry) (bool, error) {
		if entry.Processed {
			return false, nil
		}
		if !amount.Equal(entry.Amount) {
			return false, fmt.Errorf("%w: expected %s, got %s", apperrors.ErrAmountMismatch, entry.Amount.StringFixed(2), amount.StringFixed(2))
		}
		if currency != entry.Currency {
			return false, fmt.Errorf("%w: expected %s, got %s", apperrors.ErrCurrencyMismatch, entry.Currency, currency)
		}
		return true, nil
	}
}

func (g *idempotencyGuard) TryFinalize(ctx context.Context, externalRef string, amount decimal.Decimal, currency string, provider domain.ProviderRef) (*domain.FinalizeResult, error) {
	if externalRef == "" {
		return nil, fmt.Errorf("%w: external reference is required", apperrors.ErrValidation)
	}

	result, err := g.ledgerRepo.FinalizeExternalEntry(ctx, externalRef, provider, FinalizeCheck(amount, currency))
	if err != nil {
		g.GetLogger(ctx).Warn("Finalize refused",
			slog.String("tx_ref", externalRef),
			slog.String("error", err.Error()))
		return nil, err
	}

	switch result.Outcome {
	case domain.FinalizeApplied:
		g.LogInfo(ctx, "External payment finalized",
			slog.String("tx_ref", externalRef),
			slog.String("account_id", result.Entry.AccountID),
			slog.String("amount", result.Entry.Amount.StringFixed(2)))
	case domain.FinalizeAlreadyProcessed:
		g.LogInfo(ctx, "External payment already processed", slog.String("tx_ref", externalRef))
	}
	return result, nil
}

func (g *idempotencyGuard) MarkRejected(ctx context.Context, externalRef string) error {
	changed, err := g.ledgerRepo.MarkExternalStatus(ctx, externalRef, domain.ExternalFailed)
	if err != nil {
		return fmt.Errorf("failed to record rejection for %s: %w", externalRef, err)
	}
	if changed {
		g.LogInfo(ctx, "External payment marked failed", slog.String("tx_ref", externalRef))
	}
	return nil
}
