package dto

import (
	"github.com/shopspring/decimal"
)

// InitPaymentRequest starts a wallet top-up through the payment provider.
type InitPaymentRequest struct {
	Amount string `json:"amount" binding:"required,ngn_amount"`
}

// InitPaymentResponse carries what the client needs to open the provider checkout.
type InitPaymentResponse struct {
	TxRef    string          `json:"tx_ref"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// VerifyPaymentRequest is the client poll for a top-up outcome.
type VerifyPaymentRequest struct {
	TxRef string `json:"tx_ref" binding:"required"`
}

// VerifyPaymentResponse reports the reconciled state of a top-up.
type VerifyPaymentResponse struct {
	Status  string           `json:"status"` // success or already_processed
	Amount  decimal.Decimal  `json:"amount"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// FlutterwaveWebhookPayload is the body Flutterwave posts to the webhook.
type FlutterwaveWebhookPayload struct {
	Event string                 `json:"event"`
	Data  FlutterwaveWebhookData `json:"data" binding:"required"`
}

// FlutterwaveWebhookData is the transaction part of a webhook.
type FlutterwaveWebhookData struct {
	ID       int64           `json:"id"`
	TxRef    string          `json:"tx_ref" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status" binding:"required"`
}
