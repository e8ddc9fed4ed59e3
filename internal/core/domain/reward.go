package domain

// Tier is the reward classification derived from net points.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// TierFor returns the tier for a point total. Thresholds are inclusive.
func TierFor(points int64) Tier {
	switch {
	case points >= 5000:
		return TierPlatinum
	case points >= 2500:
		return TierGold
	case points >= 1000:
		return TierSilver
	default:
		return TierBronze
	}
}

// RewardSummary is the derived reward state of an account.
type RewardSummary struct {
	Points int64 `json:"points"`
	Tier   Tier  `json:"tier"`
}
