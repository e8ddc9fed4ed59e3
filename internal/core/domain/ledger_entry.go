package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExternalStatus is the provider lifecycle of an externally sourced entry.
type ExternalStatus string

const (
	ExternalPending    ExternalStatus = "pending"
	ExternalSuccessful ExternalStatus = "successful"
	ExternalFailed     ExternalStatus = "failed"
)

// RewardPointsPerEntry is awarded by the side entry written for every non-reward kind.
const RewardPointsPerEntry int64 = 100

// Metadata carries the optional kind-specific fields of an entry.
type Metadata struct {
	Phone         string `json:"phone,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Expiry        string `json:"expiry,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Category      string `json:"category,omitempty"`
	Recipient     string `json:"recipient,omitempty"`
	PlanLabel     string `json:"planLabel,omitempty"`
	Description   string `json:"description,omitempty"` // Caller override for the generated description
	Points        int64  `json:"points,omitempty"`      // Points consumed by a redemption
}

// LedgerEntry is an append-only record of one balance- or point-affecting event.
// Only the reconciliation fields change after creation, and only once.
type LedgerEntry struct {
	EntryID      int64            `json:"entryID"`      // Monotonic, assigned by the store
	AccountID    string           `json:"accountID"`    // FK -> accounts.account_id
	Kind         Kind             `json:"kind"`         // Wire label of the kind
	Amount       decimal.Decimal  `json:"amount"`       // Non-negative; sign comes from Kind
	BalanceAfter *decimal.Decimal `json:"balanceAfter"` // Nil while pending
	Points       int64            `json:"points"`       // Positive for earn, negative for redeem
	Description  string           `json:"description"`
	Metadata     Metadata         `json:"metadata"`

	ExternalRef    *string         `json:"externalRef,omitempty"` // Unique when present
	ExternalStatus *ExternalStatus `json:"externalStatus,omitempty"`
	ProviderID     string          `json:"providerID,omitempty"`
	PaymentType    string          `json:"paymentType,omitempty"`
	Currency       string          `json:"currency"`
	Processed      bool            `json:"processed"`

	CreatedAt time.Time `json:"createdAt"`
}

// Reference is the caller-facing transaction reference.
func (e LedgerEntry) Reference() string {
	return fmt.Sprintf("TXN-%06d", e.EntryID)
}

// IsPending reports whether the entry still awaits reconciliation.
func (e LedgerEntry) IsPending() bool {
	return e.ExternalRef != nil && !e.Processed
}

// SignedDelta returns the change the entry applies to its account balance.
func (e LedgerEntry) SignedDelta() decimal.Decimal {
	switch e.Kind.Effect() {
	case EffectCredit:
		return e.Amount
	case EffectDebit:
		return e.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// NewRewardEarnEntry builds the fixed side entry awarded after a qualifying entry.
func NewRewardEarnEntry(accountID string, at time.Time) LedgerEntry {
	return LedgerEntry{
		AccountID: accountID,
		Kind:      KindRewardEarn,
		Amount:    decimal.Zero,
		Points:    RewardPointsPerEntry,
		Currency:  CurrencyNGN,
		Processed: true,
		CreatedAt: at,
	}
}

// FinalizeOutcome is the non-error result of finalizing an external reference.
type FinalizeOutcome string

const (
	FinalizeApplied          FinalizeOutcome = "applied"
	FinalizeAlreadyProcessed FinalizeOutcome = "already_processed"
)

// FinalizeResult pairs the outcome with the entry as it stands afterwards.
type FinalizeResult struct {
	Outcome FinalizeOutcome
	Entry   LedgerEntry
}

// ApplyResult is what a successful Apply produced.
type ApplyResult struct {
	Entry  LedgerEntry
	Reward *LedgerEntry // Nil for reward kinds
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// StatusPtr returns a pointer to s.
func StatusPtr(s ExternalStatus) *ExternalStatus {
	return &s
}
