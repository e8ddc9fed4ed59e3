package dto

import (
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions.
type CreateTransactionRequest struct {
	Type          string `json:"type" binding:"required,ledger_kind"`
	Amount        string `json:"amount" binding:"required,ngn_amount"`
	Pin           string `json:"pin" binding:"omitempty,wallet_pin"` // Required for every kind except Deposit and Add Money
	Phone         string `json:"phone"`
	Provider      string `json:"provider"`
	Expiry        string `json:"expiry"`
	AccountNumber string `json:"account_number"`
	Category      string `json:"category"`
	Recipient     string `json:"recipient"`
	PlanLabel     string `json:"planLabel"`
	Description   string `json:"description"`
	Points        int64  `json:"points" binding:"gte=0"` // Points to redeem, Reward Redemption only
}

// Metadata converts the request's optional fields into entry metadata.
func (r CreateTransactionRequest) Metadata() domain.Metadata {
	return domain.Metadata{
		Phone:         r.Phone,
		Provider:      r.Provider,
		Expiry:        r.Expiry,
		AccountNumber: r.AccountNumber,
		Category:      r.Category,
		Recipient:     r.Recipient,
		PlanLabel:     r.PlanLabel,
		Description:   r.Description,
		Points:        r.Points,
	}
}

// CreateTransactionResponse is the answer to POST /transactions.
type CreateTransactionResponse struct {
	Success      bool            `json:"success"`
	Reference    string          `json:"reference"` // TXN-000123
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	Reference      string           `json:"reference"`
	Type           string           `json:"type"`
	Amount         decimal.Decimal  `json:"amount"`
	BalanceAfter   *decimal.Decimal `json:"balanceAfter"`
	Points         int64            `json:"points"`
	Description    string           `json:"description"`
	Phone          string           `json:"phone,omitempty"`
	Provider       string           `json:"provider,omitempty"`
	Recipient      string           `json:"recipient,omitempty"`
	Category       string           `json:"category,omitempty"`
	PlanLabel      string           `json:"planLabel,omitempty"`
	ExternalRef    *string          `json:"tx_ref,omitempty"`
	ExternalStatus *string          `json:"status,omitempty"`
	Processed      bool             `json:"processed"`
	CreatedAt      time.Time        `json:"date"`
}

// ToTransactionResponse converts a domain.LedgerEntry to TransactionResponse DTO.
func ToTransactionResponse(e domain.LedgerEntry) TransactionResponse {
	resp := TransactionResponse{
		Reference:    e.Reference(),
		Type:         e.Kind.String(),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Points:       e.Points,
		Description:  e.Description,
		Phone:        e.Metadata.Phone,
		Provider:     e.Metadata.Provider,
		Recipient:    e.Metadata.Recipient,
		Category:     e.Metadata.Category,
		PlanLabel:    e.Metadata.PlanLabel,
		ExternalRef:  e.ExternalRef,
		Processed:    e.Processed,
		CreatedAt:    e.CreatedAt,
	}
	if e.ExternalStatus != nil {
		status := string(*e.ExternalStatus)
		resp.ExternalStatus = &status
	}
	return resp
}

// ListTransactionsParams defines parameters for listing an account's entries.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
