package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderStatusSuccessful is the provider status that allows a credit.
const ProviderStatusSuccessful = "successful"

// Verification is what the payment provider reports about a transaction.
type Verification struct {
	Status      string
	Amount      decimal.Decimal
	Currency    string
	ProviderID  string
	PaymentType string
	Reference   string
}

// ProviderRef identifies the settled charge on the provider side.
type ProviderRef struct {
	ID          string
	PaymentType string
}

// Ref extracts the provider identifiers recorded on finalize.
func (v Verification) Ref() ProviderRef {
	return ProviderRef{ID: v.ProviderID, PaymentType: v.PaymentType}
}

// Successful reports whether the provider settled the payment.
func (v Verification) Successful() bool {
	return v.Status == ProviderStatusSuccessful
}

// WebhookEvent is the provider notification as received by the push path.
// Amount and Currency are informational only and never used to credit.
type WebhookEvent struct {
	Event       string
	ExternalRef string
	ProviderID  string
	Amount      decimal.Decimal
	Currency    string
	Status      string
}

// ReconcilePath names the route through which a finalize was attempted.
type ReconcilePath string

const (
	PathWebhook ReconcilePath = "webhook"
	PathPoll    ReconcilePath = "poll"
)

// ReconcileOutcome is what a reconciliation attempt resolved to.
type ReconcileOutcome string

const (
	ReconcileApplied          ReconcileOutcome = "applied"
	ReconcileAlreadyProcessed ReconcileOutcome = "already_processed"
	ReconcileIgnored          ReconcileOutcome = "ignored"
)

// ReconcileResult is returned by both reconciliation paths.
type ReconcileResult struct {
	Outcome ReconcileOutcome
	Entry   *LedgerEntry
}

// PendingPayment is a freshly initiated top-up awaiting confirmation.
type PendingPayment struct {
	ExternalRef string          `json:"tx_ref"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	EntryID     int64           `json:"entryID"`
}

// LedgerEventType names a published ledger event.
type LedgerEventType string

const (
	EventEntryApplied     LedgerEventType = "entry.applied"
	EventPaymentPending   LedgerEventType = "payment.pending"
	EventPaymentFinalized LedgerEventType = "payment.finalized"
	EventPaymentRejected  LedgerEventType = "payment.rejected"
)

// LedgerEvent is published to downstream consumers after a commit.
type LedgerEvent struct {
	Type         LedgerEventType  `json:"type"`
	AccountID    string           `json:"accountID"`
	EntryID      int64            `json:"entryID"`
	Kind         Kind             `json:"kind"`
	Amount       decimal.Decimal  `json:"amount"`
	BalanceAfter *decimal.Decimal `json:"balanceAfter,omitempty"`
	Points       int64            `json:"points,omitempty"`
	ExternalRef  string           `json:"externalRef,omitempty"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

// NewLedgerEvent builds an event describing entry.
func NewLedgerEvent(eventType LedgerEventType, entry LedgerEntry, at time.Time) LedgerEvent {
	ev := LedgerEvent{
		Type:         eventType,
		AccountID:    entry.AccountID,
		EntryID:      entry.EntryID,
		Kind:         entry.Kind,
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		Points:       entry.Points,
		OccurredAt:   at,
	}
	if entry.ExternalRef != nil {
		ev.ExternalRef = *entry.ExternalRef
	}
	return ev
}
