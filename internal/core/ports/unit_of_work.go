package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances, one per request/event,
// ensuring isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the business transaction boundary for the fulfillment core.
// Client code manages the transaction lifecycle explicitly: every error path
// rolls back before returning, so a failed fulfillment never leaves a
// partially visible order. Repositories obtained before Begin run against
// the main connection; after Begin they are bound to the transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the current
	// transaction when one is active.
	OrderRepository() OrderRepository

	// CalendarRepository returns an operational-calendar repository bound to
	// the current transaction when one is active.
	CalendarRepository() CalendarRepository

	// CatalogRepository returns the read-only reference-data repository.
	CatalogRepository() CatalogRepository
}
