package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/utils"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	now := s.Now()
	newAccount := domain.Account{
		AccountID: accountID,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		// a concurrent request opened it first
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByID(ctx, accountID)
		}
		s.LogError(ctx, err, "Failed to open account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to open account: %w", err)
	}

	s.LogInfo(ctx, "Wallet account opened", slog.String("account_id", accountID))
	return &newAccount, nil
}

func (s *accountService) SetPin(ctx context.Context, accountID string, pin string) error {
	if !utils.IsValidPin(pin) {
		return fmt.Errorf("%w: PIN must be exactly 4 digits", apperrors.ErrValidation)
	}
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return err
	}

	hash, err := utils.HashPin(pin)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash PIN", slog.String("account_id", accountID))
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	if err := s.accountRepo.UpdateAccountPin(ctx, accountID, hash, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store PIN", slog.String("account_id", accountID))
		return fmt.Errorf("failed to store PIN: %w", err)
	}
	s.LogInfo(ctx, "Transaction PIN updated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) VerifyPin(ctx context.Context, accountID string, pin string) error {
	if pin == "" {
		return fmt.Errorf("%w: Invalid or missing PIN", apperrors.ErrUnauthorized)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !utils.CheckPinHash(pin, account.PinHash) {
		s.GetLogger(ctx).Warn("PIN verification failed", slog.String("account_id", accountID))
		return fmt.Errorf("%w: Invalid or missing PIN", apperrors.ErrUnauthorized)
	}
	return nil
}
