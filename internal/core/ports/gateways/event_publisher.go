package gateways

import (
	"context"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
)

// EventPublisher hands committed ledger events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
}
