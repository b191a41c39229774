package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/kernel"
)

// CalendarRepository defines the persistence contract for the operational
// calendar: the per-day record of whether deliveries are permitted.
type CalendarRepository interface {
	// UpsertMany inserts or updates one record per day and returns the
	// affected records. Days are unique; repeated upserts overwrite the
	// enabled flag, notes, and admin attribution.
	UpsertMany(ctx context.Context, entries []*calendar.OperationalDate) ([]*calendar.OperationalDate, error)

	// GetRange returns records with from <= day <= to, ascending by day.
	GetRange(ctx context.Context, from, to kernel.Day) ([]*calendar.OperationalDate, error)

	// GetStatus returns the record for one day. A day that was never
	// configured yields an ObjectNotFoundError, which callers must treat
	// as distinct from an explicitly disabled day.
	GetStatus(ctx context.Context, day kernel.Day) (*calendar.OperationalDate, error)

	// IsDeliveryDay reports whether the day is configured and enabled.
	// Unconfigured days are not delivery days.
	IsDeliveryDay(ctx context.Context, day kernel.Day) (bool, error)
}
