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
	"github.com/SscSPs/wallet_backend/internal/dto"
	"github.com/SscSPs/wallet_backend/internal/platform/metrics"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/SscSPs/wallet_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// ledgerService is the only caller of LedgerWriter.ApplyEntry.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	metrics    *metrics.Metrics
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerPublisher sets where committed entries are announced.
func WithLedgerPublisher(p gateways.EventPublisher) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Publisher = p
	}
}

// WithLedgerMetrics sets the metrics sink.
func WithLedgerMetrics(m *metrics.Metrics) LedgerServiceOption {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// NewLedgerService creates the ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Apply validates the request, builds the primary and reward entries and hands both
// to the repository as one unit of work.
func (s *ledgerService) Apply(ctx context.Context, accountID string, kind domain.Kind, amount decimal.Decimal, meta domain.Metadata) (*domain.ApplyResult, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidateAmount(amount); err != nil {
		s.metrics.ObserveApply(kind.String(), metrics.OutcomeInvalidAmount)
		return nil, err
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		Metadata:  meta,
		Currency:  domain.CurrencyNGN,
		Processed: true,
		CreatedAt: now,
	}

	switch kind {
	case domain.KindRewardRedeem:
		if meta.Points <= 0 {
			return nil, fmt.Errorf("%w: points to redeem must be positive", apperrors.ErrValidation)
		}
		entry.Points = -meta.Points
	case domain.KindRewardEarn:
		entry.Points = meta.Points
		if entry.Points <= 0 {
			entry.Points = domain.RewardPointsPerEntry
		}
	}
	entry.Description = DescribeEntry(kind, amount, entry.Points, meta)

	var reward *domain.LedgerEntry
	if kind.AwardsPoints() {
		r := domain.NewRewardEarnEntry(accountID, now)
		r.Description = DescribeEntry(domain.KindRewardEarn, r.Amount, r.Points, domain.Metadata{})
		reward = &r
	}

	if !kind.Known() {
		s.GetLogger(ctx).Warn("Applying entry of unknown kind with no balance effect",
			slog.String("account_id", accountID),
			slog.String("kind", kind.String()))
	}

	result, err := s.ledgerRepo.ApplyEntry(ctx, entry, reward)
	if err != nil {
		s.metrics.ObserveApply(kind.String(), applyOutcome(err))
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Ledger apply refused",
				slog.String("account_id", accountID),
				slog.String("kind", kind.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Ledger apply failed",
			slog.String("account_id", accountID),
			slog.String("kind", kind.String()))
		return nil, fmt.Errorf("failed to apply %s entry: %w", kind, err)
	}

	s.metrics.ObserveApply(kind.String(), metrics.OutcomeSuccess)
	s.LogInfo(ctx, "Ledger entry applied",
		slog.String("account_id", accountID),
		slog.String("reference", result.Entry.Reference()),
		slog.String("kind", kind.String()),
		slog.String("balance_after", result.Entry.BalanceAfter.StringFixed(accounting.AmountScale)))

	s.PublishEvent(ctx, domain.EventEntryApplied, result.Entry)
	if result.Reward != nil {
		s.PublishEvent(ctx, domain.EventEntryApplied, *result.Reward)
	}
	return result, nil
}

// SubmitTransaction checks the PIN for kinds that need one, then applies the entry.
func (s *ledgerService) SubmitTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest) (*domain.ApplyResult, error) {
	kind := domain.ParseKind(req.Type)
	if kind == "" {
		return nil, fmt.Errorf("%w: transaction type is required", apperrors.ErrValidation)
	}

	// Opens the wallet on first use so credits to a new account succeed.
	if _, err := s.accountSvc.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	if kind.RequiresPIN() {
		if err := s.accountSvc.VerifyPin(ctx, accountID, req.Pin); err != nil {
			return nil, err
		}
	}

	amount, err := accounting.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	return s.Apply(ctx, accountID, kind, amount, req.Metadata())
}

// ListTransactions returns the account's entries newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := pagination.ClampLimit(params.Limit)
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(entries)),
		NextToken:    next,
	}
	for _, e := range entries {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(e))
	}
	return resp, nil
}

func applyOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return metrics.OutcomeInsufficient
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return metrics.OutcomeInvalidAmount
	case errors.Is(err, apperrors.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
