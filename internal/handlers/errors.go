package handlers

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// errorMessage is the caller-facing text for an error. Unmapped errors fall back
// to the generic message so internals never leak.
func errorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "Invalid amount"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "Invalid or missing PIN"
	case errors.Is(err, apperrors.ErrAmountMismatch):
		return "Amount mismatch"
	case errors.Is(err, apperrors.ErrCurrencyMismatch):
		return "Currency mismatch"
	case errors.Is(err, apperrors.ErrVerificationRejected):
		return "Verification failed"
	case errors.Is(err, apperrors.ErrVerificationUnavailable):
		return "Verification unavailable, please retry"
	case errors.Is(err, apperrors.ErrNotFound):
		return "Transaction not found"
	case errors.Is(err, apperrors.ErrDuplicate):
		return "Transaction already exists"
	case errors.Is(err, apperrors.ErrValidation):
		return err.Error()
	}
	return fallback
}

// respondError logs err at a level matching its status and writes the JSON error body.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": errorMessage(err, fallback)})
}
