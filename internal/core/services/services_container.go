package services

import (
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/platform/config"
	"github.com/SscSPs/wallet_backend/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	verifier gateways.PaymentVerifier,
	publisher gateways.EventPublisher,
	m *metrics.Metrics,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		container.Account,
		WithLedgerPublisher(publisher),
		WithLedgerMetrics(m),
	)
	container.Idempotency = NewIdempotencyGuard(repos.LedgerRepo)
	container.Reconciliation = NewReconciliationService(
		repos.LedgerRepo,
		container.Idempotency,
		verifier,
		WithReconciliationPublisher(publisher),
		WithReconciliationMetrics(m),
	)
	container.Payments = NewPaymentService(
		repos.LedgerRepo,
		container.Account,
		container.Idempotency,
		cfg.MinTopUpAmount,
		WithPaymentPublisher(publisher),
	)
	container.Rewards = NewRewardService(repos.LedgerRepo)
	container.PendingSweeper = NewPendingSweeper(repos.LedgerRepo, cfg.PendingPaymentTTL, cfg.PendingSweepInterval, m)

	return container
}
