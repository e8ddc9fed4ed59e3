package accounting

import (
	"testing"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(dec("0.01")))
	assert.NoError(t, ValidateAmount(dec("1500.50")))
	assert.NoError(t, ValidateAmount(dec("1500.500")))

	assert.ErrorIs(t, ValidateAmount(decimal.Zero), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(dec("-5")), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(dec("10.005")), apperrors.ErrInvalidAmount)
}

func TestParseAmount(t *testing.T) {
	amt, err := ParseAmount("2000")
	require.NoError(t, err)
	assert.True(t, amt.Equal(dec("2000")))

	_, err = ParseAmount("two thousand")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = ParseAmount("0")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestNextBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		kind    domain.Kind
		amount  string
		want    string
		wantErr error
	}{
		{"deposit adds", "1000", domain.KindDeposit, "250", "1250", nil},
		{"add money adds", "0", domain.KindAddMoney, "2000", "2000", nil},
		{"redeem pays out", "10", domain.KindRewardRedeem, "40", "50", nil},
		{"withdrawal subtracts", "1000", domain.KindWithdrawal, "300", "700", nil},
		{"debit down to zero", "300", domain.KindBetting, "300", "0", nil},
		{"debit over balance", "299.99", domain.KindBillPayment, "300", "299.99", apperrors.ErrInsufficientFunds},
		{"reward earn keeps balance", "1000", domain.KindRewardEarn, "0", "1000", nil},
		{"unknown kind keeps balance", "1000", domain.ParseKind("Lottery"), "5", "1000", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBalance(dec(tt.balance), tt.kind, dec(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCheckPointsAvailable(t *testing.T) {
	assert.NoError(t, CheckPointsAvailable(100, -40))
	assert.NoError(t, CheckPointsAvailable(100, -100))
	assert.NoError(t, CheckPointsAvailable(0, 100))
	assert.ErrorIs(t, CheckPointsAvailable(100, -101), apperrors.ErrInsufficientFunds)
}
