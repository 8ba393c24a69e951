package repository

import (
	"context"
	"time"

	"rhiza/internal/domain"
)

// PayloadCache stores backend graph payloads with an expiry
type PayloadCache interface {
	// GetPayload returns the cached payload for key; ok is false on a miss or an expired entry
	GetPayload(ctx context.Context, key string) (p *domain.Payload, ok bool, err error)
	// PutPayload stores p under key for ttl
	PutPayload(ctx context.Context, key string, p *domain.Payload, ttl time.Duration) error
	// PurgeExpired removes expired entries and reports how many were removed
	PurgeExpired(ctx context.Context) (int64, error)

	// Close releases resources
	Close() error
}
