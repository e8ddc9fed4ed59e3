package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/dto"
	"github.com/SscSPs/wallet_backend/internal/middleware"
	"github.com/SscSPs/wallet_backend/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// paymentHandler serves the client side of provider top-ups.
type paymentHandler struct {
	paymentService        portssvc.PaymentInitSvc
	reconciliationService portssvc.ReconciliationSvc
	accountService        portssvc.AccountReaderSvc
}

func newPaymentHandler(ps portssvc.PaymentInitSvc, rs portssvc.ReconciliationSvc, as portssvc.AccountReaderSvc) *paymentHandler {
	return &paymentHandler{
		paymentService:        ps,
		reconciliationService: rs,
		accountService:        as,
	}
}

func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentInitSvc, rs portssvc.ReconciliationSvc, as portssvc.AccountReaderSvc) {
	h := newPaymentHandler(ps, rs, as)

	flw := rg.Group("/payments/flutterwave")
	{
		flw.POST("/init", h.initPayment)
		flw.POST("/verify", h.verifyPayment)
	}
}

// initPayment records a pending top-up and hands back the reference for checkout.
func (h *paymentHandler) initPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InitPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, err := accounting.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, logger, err, "Invalid amount")
		return
	}

	pending, err := h.paymentService.InitPayment(c.Request.Context(), accountID, amount)
	if err != nil {
		respondError(c, logger, err, "Failed to initialize payment")
		return
	}

	c.JSON(http.StatusOK, dto.InitPaymentResponse{
		TxRef:    pending.ExternalRef,
		Amount:   pending.Amount,
		Currency: pending.Currency,
	})
}

// verifyPayment is the pull path: the client asks after returning from checkout.
func (h *paymentHandler) verifyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VerifyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "tx_ref is required"})
		return
	}

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("tx_ref", req.TxRef))
	result, err := h.reconciliationService.VerifyPayment(c.Request.Context(), accountID, req.TxRef)
	if err != nil {
		respondError(c, logger, err, "Failed to verify payment")
		return
	}

	resp := dto.VerifyPaymentResponse{Status: "success"}
	if result.Outcome == domain.ReconcileAlreadyProcessed {
		resp.Status = "already_processed"
	}
	if result.Entry != nil {
		resp.Amount = result.Entry.Amount
	}
	if account, err := h.accountService.GetAccount(c.Request.Context(), accountID); err == nil {
		resp.Balance = &account.Balance
	} else {
		logger.Warn("Could not load balance after verification", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, resp)
}
