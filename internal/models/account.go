package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table. One per wallet holder.
type Account struct {
	AccountID   string          `db:"account_id"`
	Phone       sql.NullString  `db:"phone"`
	Balance     decimal.Decimal `db:"balance"` // NUMERIC(18,2), never negative
	PinHash     sql.NullString  `db:"pin_hash"`
	AuditFields                 // Embed common audit fields
}
