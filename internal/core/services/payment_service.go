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
	"github.com/SscSPs/wallet_backend/internal/utils"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const maxReferenceAttempts = 5

// RefGenerator produces candidate external references for an account.
type RefGenerator func(accountID string) (string, error)

// FlutterwaveRef builds FLW-{accountID}-{six random digits}.
func FlutterwaveRef(accountID string) (string, error) {
	n, err := utils.SecureRandomInt(100000, 999999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("FLW-%s-%d", accountID, n), nil
}

type paymentService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountReaderSvc
	guard      portssvc.IdempotencyGuardSvc
	minAmount  decimal.Decimal
	newRef     RefGenerator
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithRefGenerator overrides how references are produced.
func WithRefGenerator(gen RefGenerator) PaymentServiceOption {
	return func(s *paymentService) {
		s.newRef = gen
	}
}

// WithPaymentPublisher sets where pending payments are announced.
func WithPaymentPublisher(p gateways.EventPublisher) PaymentServiceOption {
	return func(s *paymentService) {
		s.Publisher = p
	}
}

// NewPaymentService creates the top-up initiation service.
func NewPaymentService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountReaderSvc, guard portssvc.IdempotencyGuardSvc, minAmount decimal.Decimal, options ...PaymentServiceOption) portssvc.PaymentInitSvc {
	svc := &paymentService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
		guard:      guard,
		minAmount:  minAmount,
		newRef:     FlutterwaveRef,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentInitSvc = (*paymentService)(nil)

func (s *paymentService) InitPayment(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.PendingPayment, error) {
	if err := accounting.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(s.minAmount) {
		return nil, fmt.Errorf("%w: minimum top-up is %s", apperrors.ErrInvalidAmount, utils.FormatNaira(s.minAmount))
	}
	if _, err := s.accountSvc.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		ref, err := s.newRef(accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate payment reference: %w", err)
		}

		taken, err := s.guard.Reserve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if taken {
			s.LogDebug(ctx, "Payment reference collision", slog.String("tx_ref", ref), slog.Int("attempt", attempt))
			continue
		}

		entry := domain.LedgerEntry{
			AccountID:      accountID,
			Kind:           domain.KindAddMoney,
			Amount:         amount,
			ExternalRef:    domain.StringPtr(ref),
			ExternalStatus: domain.StatusPtr(domain.ExternalPending),
			Currency:       domain.CurrencyNGN,
			Processed:      false,
			CreatedAt:      s.Now(),
		}
		entry.Description = DescribeEntry(entry.Kind, amount, 0, domain.Metadata{})

		created, err := s.ledgerRepo.CreatePendingEntry(ctx, entry)
		if err != nil {
			// lost a race for the same reference between Reserve and insert
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			s.LogError(ctx, err, "Failed to create pending payment", slog.String("tx_ref", ref))
			return nil, fmt.Errorf("failed to create pending payment: %w", err)
		}

		s.LogInfo(ctx, "Payment initiated",
			slog.String("tx_ref", ref),
			slog.String("account_id", accountID),
			slog.String("amount", amount.StringFixed(2)))
		s.PublishEvent(ctx, domain.EventPaymentPending, *created)

		return &domain.PendingPayment{
			ExternalRef: ref,
			Amount:      created.Amount,
			Currency:    created.Currency,
			EntryID:     created.EntryID,
		}, nil
	}

	return nil, fmt.Errorf("%w: could not allocate a unique payment reference", apperrors.ErrDuplicate)
}
