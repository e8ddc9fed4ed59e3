package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID      int64               `db:"entry_id"`
	AccountID    string              `db:"account_id"`
	Kind         string              `db:"kind"`
	Amount       decimal.Decimal     `db:"amount"`
	BalanceAfter decimal.NullDecimal `db:"balance_after"`
	Points       int64               `db:"points"`
	Description  string              `db:"description"`
	Metadata     []byte              `db:"metadata"` // JSONB

	ExternalRef    sql.NullString `db:"external_ref"`
	ExternalStatus sql.NullString `db:"external_status"`
	ProviderID     sql.NullString `db:"provider_id"`
	PaymentType    sql.NullString `db:"payment_type"`
	Currency       string         `db:"currency"`
	Processed      bool           `db:"processed"`

	CreatedAt time.Time `db:"created_at"`
}
