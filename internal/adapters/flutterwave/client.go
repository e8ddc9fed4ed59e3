// Package flutterwave verifies payments against the Flutterwave v3 API.
package flutterwave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	"github.com/SscSPs/wallet_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

// Client is a PaymentVerifier backed by the Flutterwave REST API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

var _ gateways.PaymentVerifier = (*Client)(nil)

// NewClient creates a verifier. timeout bounds every provider call.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type verifyEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    *transactionDTO `json:"data"`
}

type transactionDTO struct {
	ID          int64           `json:"id"`
	TxRef       string          `json:"tx_ref"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	PaymentType string          `json:"payment_type"`
}

// VerifyByID calls GET /v3/transactions/{id}/verify.
func (c *Client) VerifyByID(ctx context.Context, providerID string) (*domain.Verification, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: provider transaction id is required", apperrors.ErrValidation)
	}
	return c.verify(ctx, "/v3/transactions/"+url.PathEscape(providerID)+"/verify")
}

// VerifyByReference calls GET /v3/transactions/verify_by_reference?tx_ref=...
func (c *Client) VerifyByReference(ctx context.Context, externalRef string) (*domain.Verification, error) {
	if externalRef == "" {
		return nil, fmt.Errorf("%w: tx_ref is required", apperrors.ErrValidation)
	}
	return c.verify(ctx, "/v3/transactions/verify_by_reference?tx_ref="+url.QueryEscape(externalRef))
}

func (c *Client) verify(ctx context.Context, path string) (*domain.Verification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: flutterwave secret key not configured", apperrors.ErrVerificationUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Flutterwave request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrVerificationUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: provider answered %d", apperrors.ErrVerificationUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// our credentials are wrong; the payment itself may be fine
		logger.Error("Flutterwave rejected credentials", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: provider answered %d", apperrors.ErrVerificationUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: provider answered %d: %s", apperrors.ErrVerificationRejected, resp.StatusCode, envelopeMessage(body))
	}

	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: undecodable response: %v", apperrors.ErrVerificationUnavailable, err)
	}
	if envelope.Status != "success" || envelope.Data == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrVerificationRejected, orUnknown(envelope.Message))
	}

	tx := envelope.Data
	return &domain.Verification{
		Status:      tx.Status,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		ProviderID:  strconv.FormatInt(tx.ID, 10),
		PaymentType: tx.PaymentType,
		Reference:   tx.TxRef,
	}, nil
}

func envelopeMessage(body []byte) string {
	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "unknown error"
	}
	return orUnknown(envelope.Message)
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
