package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/services"
	"github.com/SscSPs/wallet_backend/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPendingSweeper_DisabledWithoutTTL(t *testing.T) {
	repo := new(MockLedgerRepository)
	sweeper := services.NewPendingSweeper(repo, 0, time.Minute, nil)

	n, err := sweeper.SweepOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	repo.AssertNotCalled(t, "ExpirePendingEntries", mock.Anything, mock.Anything)
}

func TestPendingSweeper_UsesTTLCutoff(t *testing.T) {
	repo := new(MockLedgerRepository)
	ttl := 30 * time.Minute
	sweeper := services.NewPendingSweeper(repo, ttl, time.Minute, metrics.NewMetrics(prometheus.NewRegistry()))
	before := time.Now().UTC()

	repo.On("ExpirePendingEntries", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.After(time.Now().UTC().Add(-ttl)) && !cutoff.Before(before.Add(-ttl))
	})).Return(int64(3), nil).Once()

	n, err := sweeper.SweepOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}

func TestPendingSweeper_RunStopsOnCancel(t *testing.T) {
	repo := new(MockLedgerRepository)
	repo.On("ExpirePendingEntries", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	sweeper := services.NewPendingSweeper(repo, time.Hour, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
