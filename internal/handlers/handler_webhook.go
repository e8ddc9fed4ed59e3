package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/dto"
	"github.com/SscSPs/wallet_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type webhookHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

// registerWebhookRoutes registers provider callbacks. Signature checking is the
// caller's middleware; by the time a handler runs the request is authentic.
func registerWebhookRoutes(rg *gin.RouterGroup, rs portssvc.ReconciliationSvc) {
	h := &webhookHandler{reconciliationService: rs}
	rg.POST("/flutterwave", h.flutterwave)
}

func (h *webhookHandler) flutterwave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var payload dto.FlutterwaveWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warn("Webhook parsing failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	event := domain.WebhookEvent{
		Event:       payload.Event,
		ExternalRef: payload.Data.TxRef,
		Amount:      payload.Data.Amount,
		Currency:    payload.Data.Currency,
		Status:      payload.Data.Status,
	}
	if payload.Data.ID != 0 {
		event.ProviderID = strconv.FormatInt(payload.Data.ID, 10)
	}

	logger = logger.With(slog.String("tx_ref", event.ExternalRef))
	result, err := h.reconciliationService.HandleWebhook(c.Request.Context(), event)
	if err != nil {
		respondError(c, logger, err, "Webhook processing failed")
		return
	}

	switch result.Outcome {
	case domain.ReconcileIgnored:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	case domain.ReconcileAlreadyProcessed:
		c.JSON(http.StatusOK, gin.H{"status": "already_processed"})
	default:
		logger.Info("Webhook credited wallet")
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}
