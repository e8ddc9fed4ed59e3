package domain_test

import (
	"testing"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		points int64
		want   domain.Tier
	}{
		{-40, domain.TierBronze},
		{0, domain.TierBronze},
		{999, domain.TierBronze},
		{1000, domain.TierSilver},
		{2499, domain.TierSilver},
		{2500, domain.TierGold},
		{4999, domain.TierGold},
		{5000, domain.TierPlatinum},
		{120000, domain.TierPlatinum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.TierFor(tt.points), "points=%d", tt.points)
	}
}
