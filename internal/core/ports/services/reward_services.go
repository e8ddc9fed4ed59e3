package services

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// RewardSvc derives reward points and tier from the entry log.
type RewardSvc interface {
	// TotalPoints sums processed earn and redeem points.
	TotalPoints(ctx context.Context, accountID string) (int64, error)

	// GetRewards returns points and the tier they map to.
	GetRewards(ctx context.Context, accountID string) (*domain.RewardSummary, error)
}
