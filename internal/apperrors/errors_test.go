package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", fmt.Errorf("lookup: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"insufficient", fmt.Errorf("apply: %w", apperrors.ErrInsufficientFunds), http.StatusBadRequest},
		{"bad pin", apperrors.ErrUnauthorized, http.StatusBadRequest},
		{"mismatch", apperrors.ErrAmountMismatch, http.StatusBadRequest},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"unavailable", fmt.Errorf("flw: %w", apperrors.ErrVerificationUnavailable), http.StatusServiceUnavailable},
		{"app error", apperrors.NewAppError(http.StatusTeapot, "brew", nil), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.HTTPStatus(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := apperrors.NewAppError(http.StatusBadRequest, "bad input", apperrors.ErrValidation)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "bad input: validation error", err.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, apperrors.IsRetryable(fmt.Errorf("x: %w", apperrors.ErrVerificationUnavailable)))
	assert.False(t, apperrors.IsRetryable(apperrors.ErrVerificationRejected))
}
