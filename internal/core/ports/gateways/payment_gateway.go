package gateways

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// PaymentVerifier asks the payment provider what actually happened to a payment.
// Implementations return apperrors.ErrVerificationUnavailable when the provider cannot
// be reached and apperrors.ErrVerificationRejected, together with the verification,
// when the provider reports a non-successful status.
type PaymentVerifier interface {
	// VerifyByReference looks a payment up by the reference issued at initiation.
	VerifyByReference(ctx context.Context, externalRef string) (*domain.Verification, error)

	// VerifyByID looks a payment up by the provider's own transaction id.
	VerifyByID(ctx context.Context, providerID string) (*domain.Verification, error)
}
