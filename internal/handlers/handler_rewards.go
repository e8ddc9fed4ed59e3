package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/dto"
	"github.com/SscSPs/wallet_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type rewardHandler struct {
	rewardService portssvc.RewardSvc
}

func registerRewardRoutes(rg *gin.RouterGroup, rs portssvc.RewardSvc) {
	h := &rewardHandler{rewardService: rs}
	rg.GET("/rewards", h.getRewards)
}

func (h *rewardHandler) getRewards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.rewardService.GetRewards(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve rewards")
		return
	}

	c.JSON(http.StatusOK, dto.RewardsResponse{
		Points: summary.Points,
		Tier:   string(summary.Tier),
	})
}
