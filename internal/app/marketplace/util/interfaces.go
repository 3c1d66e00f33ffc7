package util

import (
	"context"
	"time"

	"marketplace/internal/app/marketplace/entity"
)

// ProductCache caches the resolved product listing.
// Used for dependency injection and to simplify testing.
type ProductCache interface {
	SetProducts(ctx context.Context, products []entity.ProductWithCategory, ttl time.Duration) error
	GetProducts(ctx context.Context) ([]entity.ProductWithCategory, error)
	DeleteProducts(ctx context.Context) error
	Close() error
}

// MessagePublisher publishes domain events to a message queue (Kafka).
// Used for dependency injection and to simplify testing.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
