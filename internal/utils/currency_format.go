package utils

import (
	"github.com/shopspring/decimal"
)

// NairaSymbol prefixes formatted NGN amounts.
const NairaSymbol = "₦"

// FormatNaira formats an amount with two decimal places and the naira symbol.
// Example: 1500 returns "₦1500.00"
func FormatNaira(amount decimal.Decimal) string {
	return NairaSymbol + amount.StringFixed(2)
}
