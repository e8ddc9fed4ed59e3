package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
)

// rewardService is read-only: points are always derived from the entry log.
type rewardService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewRewardService creates the reward engine.
func NewRewardService(ledgerRepo portsrepo.LedgerReader) portssvc.RewardSvc {
	return &rewardService{ledgerRepo: ledgerRepo}
}

var _ portssvc.RewardSvc = (*rewardService)(nil)

func (s *rewardService) TotalPoints(ctx context.Context, accountID string) (int64, error) {
	total, err := s.ledgerRepo.SumPointsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum reward points", slog.String("account_id", accountID))
		return 0, fmt.Errorf("failed to sum reward points: %w", err)
	}
	return total, nil
}

func (s *rewardService) GetRewards(ctx context.Context, accountID string) (*domain.RewardSummary, error) {
	total, err := s.TotalPoints(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &domain.RewardSummary{Points: total, Tier: domain.TierFor(total)}, nil
}
