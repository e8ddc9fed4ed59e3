package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/platform/metrics"
)

// reconciliationService drives both confirmation paths. The provider is always
// asked first, with no lock held; only then does the guard take its short lock.
type reconciliationService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	guard      portssvc.IdempotencyGuardSvc
	verifier   gateways.PaymentVerifier
	metrics    *metrics.Metrics
}

// ReconciliationOption is a functional option for configuring the reconciliation service
type ReconciliationOption func(*reconciliationService)

// WithReconciliationPublisher sets where finalized payments are announced.
func WithReconciliationPublisher(p gateways.EventPublisher) ReconciliationOption {
	return func(s *reconciliationService) {
		s.Publisher = p
	}
}

// WithReconciliationMetrics sets the metrics sink.
func WithReconciliationMetrics(m *metrics.Metrics) ReconciliationOption {
	return func(s *reconciliationService) {
		s.metrics = m
	}
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(ledgerRepo portsrepo.LedgerReader, guard portssvc.IdempotencyGuardSvc, verifier gateways.PaymentVerifier, options ...ReconciliationOption) portssvc.ReconciliationSvc {
	svc := &reconciliationService{
		ledgerRepo: ledgerRepo,
		guard:      guard,
		verifier:   verifier,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) HandleWebhook(ctx context.Context, event domain.WebhookEvent) (*domain.ReconcileResult, error) {
	if event.ExternalRef == "" {
		return nil, fmt.Errorf("%w: tx_ref is required", apperrors.ErrValidation)
	}
	logger := s.GetLogger(ctx).With(slog.String("tx_ref", event.ExternalRef), slog.String("path", string(domain.PathWebhook)))

	if event.Status != domain.ProviderStatusSuccessful {
		logger.Info("Ignored webhook", slog.String("status", event.Status))
		s.metrics.ObserveFinalize(string(domain.PathWebhook), metrics.OutcomeIgnored)
		return &domain.ReconcileResult{Outcome: domain.ReconcileIgnored}, nil
	}

	verification, err := s.verify(ctx, func() (*domain.Verification, error) {
		if event.ProviderID != "" {
			return s.verifier.VerifyByID(ctx, event.ProviderID)
		}
		return s.verifier.VerifyByReference(ctx, event.ExternalRef)
	})
	return s.finalize(ctx, domain.PathWebhook, event.ExternalRef, verification, err)
}

func (s *reconciliationService) VerifyPayment(ctx context.Context, accountID string, externalRef string) (*domain.ReconcileResult, error) {
	if externalRef == "" {
		return nil, fmt.Errorf("%w: tx_ref is required", apperrors.ErrValidation)
	}

	entry, err := s.ledgerRepo.FindEntryByExternalRef(ctx, externalRef)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.metrics.ObserveFinalize(string(domain.PathPoll), metrics.OutcomeNotFound)
		}
		return nil, err
	}
	// someone else's reference looks exactly like a missing one
	if entry.AccountID != accountID {
		s.metrics.ObserveFinalize(string(domain.PathPoll), metrics.OutcomeNotFound)
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, externalRef)
	}
	if entry.Processed {
		s.metrics.ObserveFinalize(string(domain.PathPoll), metrics.OutcomeAlreadyProcessed)
		return &domain.ReconcileResult{Outcome: domain.ReconcileAlreadyProcessed, Entry: entry}, nil
	}

	verification, err := s.verify(ctx, func() (*domain.Verification, error) {
		return s.verifier.VerifyByReference(ctx, externalRef)
	})
	return s.finalize(ctx, domain.PathPoll, externalRef, verification, err)
}

// verify times the provider call. It must never run under a ledger lock.
func (s *reconciliationService) verify(ctx context.Context, call func() (*domain.Verification, error)) (*domain.Verification, error) {
	start := s.Now()
	verification, err := call()
	took := s.Now().Sub(start)

	switch {
	case err == nil:
		s.metrics.ObserveVerify(metrics.OutcomeSuccess, took)
	case errors.Is(err, apperrors.ErrVerificationRejected):
		s.metrics.ObserveVerify(metrics.OutcomeRejected, took)
	default:
		s.metrics.ObserveVerify(metrics.OutcomeUnavailable, took)
	}
	return verification, err
}

func (s *reconciliationService) finalize(ctx context.Context, path domain.ReconcilePath, externalRef string, verification *domain.Verification, verifyErr error) (*domain.ReconcileResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("tx_ref", externalRef), slog.String("path", string(path)))

	if verifyErr != nil {
		switch {
		case errors.Is(verifyErr, apperrors.ErrVerificationRejected):
			logger.Warn("Provider rejected payment", slog.String("error", verifyErr.Error()))
			s.metrics.ObserveFinalize(string(path), metrics.OutcomeRejected)
			if err := s.guard.MarkRejected(ctx, externalRef); err != nil {
				s.LogError(ctx, err, "Failed to record rejected payment", slog.String("tx_ref", externalRef))
			} else if entry, err := s.ledgerRepo.FindEntryByExternalRef(ctx, externalRef); err == nil {
				s.PublishEvent(ctx, domain.EventPaymentRejected, *entry)
			}
		case errors.Is(verifyErr, apperrors.ErrVerificationUnavailable):
			logger.Warn("Provider verification unavailable, entry stays pending", slog.String("error", verifyErr.Error()))
			s.metrics.ObserveFinalize(string(path), metrics.OutcomeUnavailable)
		default:
			s.LogError(ctx, verifyErr, "Provider verification failed", slog.String("tx_ref", externalRef))
			s.metrics.ObserveFinalize(string(path), metrics.OutcomeError)
		}
		return nil, verifyErr
	}

	if verification.Reference != "" && verification.Reference != externalRef {
		logger.Warn("Provider verification is for a different reference", slog.String("verified_ref", verification.Reference))
		s.metrics.ObserveFinalize(string(path), metrics.OutcomeMismatch)
		return nil, fmt.Errorf("%w: provider reports reference %s", apperrors.ErrValidation, verification.Reference)
	}
	if !verification.Successful() {
		// verifiers are expected to return ErrVerificationRejected themselves
		return s.finalize(ctx, path, externalRef, nil, fmt.Errorf("%w: status %s", apperrors.ErrVerificationRejected, verification.Status))
	}

	result, err := s.guard.TryFinalize(ctx, externalRef, verification.Amount, verification.Currency, verification.Ref())
	if err != nil {
		s.metrics.ObserveFinalize(string(path), finalizeOutcome(err))
		return nil, err
	}

	switch result.Outcome {
	case domain.FinalizeApplied:
		s.metrics.ObserveFinalize(string(path), metrics.OutcomeSuccess)
		s.PublishEvent(ctx, domain.EventPaymentFinalized, result.Entry)
		return &domain.ReconcileResult{Outcome: domain.ReconcileApplied, Entry: &result.Entry}, nil
	default:
		s.metrics.ObserveFinalize(string(path), metrics.OutcomeAlreadyProcessed)
		return &domain.ReconcileResult{Outcome: domain.ReconcileAlreadyProcessed, Entry: &result.Entry}, nil
	}
}

func finalizeOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, apperrors.ErrAmountMismatch), errors.Is(err, apperrors.ErrCurrencyMismatch):
		return metrics.OutcomeMismatch
	default:
		return metrics.OutcomeError
	}
}
