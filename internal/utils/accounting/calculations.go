package accounting

import (
	"fmt"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places the wallet stores.
const AmountScale int32 = 2

// ValidateAmount checks that a caller-supplied amount is positive and has at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), AmountScale)
	}
	return nil
}

// ParseAmount parses a decimal string and validates it.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, raw)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// NextBalance returns the balance after applying an entry of the given kind.
// Debits larger than the current balance fail with ErrInsufficientFunds.
func NextBalance(balance decimal.Decimal, kind domain.Kind, amount decimal.Decimal) (decimal.Decimal, error) {
	switch kind.Effect() {
	case domain.EffectCredit:
		return balance.Add(amount), nil
	case domain.EffectDebit:
		if amount.GreaterThan(balance) {
			return balance, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, balance.StringFixed(AmountScale), amount.StringFixed(AmountScale))
		}
		return balance.Sub(amount), nil
	default:
		return balance, nil
	}
}

// CheckPointsAvailable fails when a point delta would take the running total below zero.
func CheckPointsAvailable(currentPoints int64, delta int64) error {
	if delta < 0 && currentPoints+delta < 0 {
		return fmt.Errorf("%w: %d points available, %d requested", apperrors.ErrInsufficientFunds, currentPoints, -delta)
	}
	return nil
}
