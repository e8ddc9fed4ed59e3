package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/middleware"
	"github.com/SscSPs/wallet_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// gatherer backs /metrics; nil skips that route.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			corsCfg.AllowOrigins = nil
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
		}
		r.Use(cors.New(corsCfg))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	limit, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	webhooks := r.Group("/webhooks",
		middleware.RateLimit(limit),
		middleware.WebhookSignature(cfg.FlutterwaveSecretHash),
	)
	registerWebhookRoutes(webhooks, services.Reconciliation)

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(limit))
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	// auth first so the limiter can key on the account
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), rateLimit)

	registerAccountRoutes(v1, service.Account)
	registerTransactionRoutes(v1, service.Ledger)
	registerPaymentRoutes(v1, service.Payments, service.Reconciliation, service.Account)
	registerRewardRoutes(v1, service.Rewards)
}
