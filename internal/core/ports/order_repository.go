package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrPaymentIntentConflict is returned by Add when another order already
// holds the payment intent id. The fulfillment coordinator recovers by
// re-fetching the winner.
var ErrPaymentIntentConflict = errors.New("an order for this payment intent already exists")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The store enforces uniqueness of the payment
	// intent id; concurrent duplicates surface as ErrPaymentIntentConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order permanently. Compensating actions (refunds,
	// notifications) are the caller's responsibility.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentIntentID retrieves the order created for a payment intent.
	// This is the idempotency lookup of the fulfillment coordinator.
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error)

	// GetAllActiveEndedBefore retrieves Active orders whose last delivery
	// date is before the given day. Used by the expiration process.
	GetAllActiveEndedBefore(ctx context.Context, day kernel.Day) ([]*order.Order, error)
}
