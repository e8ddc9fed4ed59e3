package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_backend/internal/core/ports/services"
	"github.com/SscSPs/wallet_backend/internal/platform/metrics"
)

// pendingSweeper moves stale pending top-ups to failed. It never touches balances,
// and a failed entry can still be finalized if the provider later confirms it.
type pendingSweeper struct {
	BaseService
	ledgerRepo portsrepo.LedgerWriter
	ttl        time.Duration
	interval   time.Duration
	metrics    *metrics.Metrics
}

// NewPendingSweeper creates a sweeper. A zero ttl disables expiry.
func NewPendingSweeper(ledgerRepo portsrepo.LedgerWriter, ttl, interval time.Duration, m *metrics.Metrics) portssvc.PendingSweeperSvc {
	return &pendingSweeper{
		ledgerRepo: ledgerRepo,
		ttl:        ttl,
		interval:   interval,
		metrics:    m,
	}
}

var _ portssvc.PendingSweeperSvc = (*pendingSweeper)(nil)

func (s *pendingSweeper) SweepOnce(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.Now().Add(-s.ttl)
	n, err := s.ledgerRepo.ExpirePendingEntries(ctx, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Pending sweep failed")
		return 0, err
	}
	if n > 0 {
		s.metrics.AddPendingExpired(n)
		s.LogInfo(ctx, "Expired stale pending payments", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
	return n, nil
}

func (s *pendingSweeper) Run(ctx context.Context) {
	if s.ttl <= 0 || s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.SweepOnce(ctx)
		}
	}
}
