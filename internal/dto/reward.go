package dto

// RewardsResponse is the derived reward state.
type RewardsResponse struct {
	Points int64  `json:"points"`
	Tier   string `json:"tier"`
}
