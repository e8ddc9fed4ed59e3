package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	"github.com/SscSPs/wallet_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher gateways.EventPublisher
	Clock     func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock, UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// PublishEvent hands an event to the publisher. Failures are logged and swallowed:
// the ledger has already committed.
func (s *BaseService) PublishEvent(ctx context.Context, eventType domain.LedgerEventType, entry domain.LedgerEntry) {
	if s.Publisher == nil {
		return
	}
	event := domain.NewLedgerEvent(eventType, entry, s.Now())
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", string(eventType)),
			slog.Int64("entry_id", entry.EntryID))
	}
}
