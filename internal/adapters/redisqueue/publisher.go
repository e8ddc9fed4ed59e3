// Package redisqueue publishes committed ledger events onto a Redis list.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/ports/gateways"
	"github.com/go-redis/redis/v8"
)

// Publisher RPUSHes JSON-encoded events; consumers BLPOP from the other end.
type Publisher struct {
	client redis.Cmdable
	queue  string
}

var _ gateways.EventPublisher = (*Publisher)(nil)

func NewPublisher(client redis.Cmdable, queue string) *Publisher {
	return &Publisher{client: client, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode ledger event: %w", err)
	}
	if err := p.client.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push ledger event to %s: %w", p.queue, err)
	}
	return nil
}

// NoopPublisher drops events. Used when Redis is not configured.
type NoopPublisher struct{}

var _ gateways.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, domain.LedgerEvent) error { return nil }

// InitRedis connects to Redis. It returns nil when addr is empty or the server
// does not answer, and the caller falls back to NoopPublisher.
func InitRedis(ctx context.Context, addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed, continuing without ledger events: %v", err)
		_ = rdb.Close()
		return nil
	}

	log.Println("Redis connection established")
	return rdb
}
