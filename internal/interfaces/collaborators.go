package interfaces

import (
	"context"
	"time"

	"github.com/lifesure/lifesure-backend/internal/models"
)

// PaymentGateway is the external payment collaborator. Amounts are in minor
// currency units. The retrieved intent, not the caller, is the source of
// truth for the paid amount.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receiptEmail string, metadata map[string]string) (clientSecret string, err error)
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
}

// EventPublisher emits lifecycle state-change events. Publishing is
// fire-and-forget from the caller's point of view; failures are logged, not
// propagated.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Locker provides short-lived processing locks keyed by entity.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
