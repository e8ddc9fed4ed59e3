package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a single-currency wallet owned by one user.
// Balance always equals the BalanceAfter of the latest processed entry.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key, also the JWT subject
	Phone     string          `json:"phone"`     // Nullable external identifier
	Balance   decimal.Decimal `json:"balance"`   // NGN, two decimal places
	PinHash   string          `json:"-"`         // bcrypt hash of the transaction PIN
	AuditFields
}

// HasPin reports whether a transaction PIN has been set.
func (a Account) HasPin() bool {
	return a.PinHash != ""
}
