package dto

import (
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for a wallet account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Phone     string          `json:"phone,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	HasPin    bool            `json:"hasPin"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Phone:     acc.Phone,
		Balance:   acc.Balance,
		Currency:  domain.CurrencyNGN,
		HasPin:    acc.HasPin(),
		CreatedAt: acc.CreatedAt,
	}
}

// PinRequest carries a 4-digit transaction PIN.
type PinRequest struct {
	Pin string `json:"pin" binding:"required,wallet_pin"`
}
