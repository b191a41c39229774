// Package commands contains the write operations of the fulfillment core:
// payment fulfillment, admin order updates and removal, operational-calendar
// upserts, and background order expiration. Every handler follows the same
// shape: validate the command, open a unit of work, mutate through domain
// methods, commit or roll back.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces scoped per handler. A handler only sees the
// repositories it needs, which keeps transaction boundaries honest.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CalendarRepoFactory provides access to the operational-calendar
	// repository within a transaction.
	CalendarRepoFactory interface {
		CalendarRepository() ports.CalendarRepository
	}

	// CatalogRepoFactory provides access to the read-only reference data.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OrderUoW manages transactions for order-only operations: admin updates,
	// removal, and expiration.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderCatalogUoW manages transactions for order mutations that consult
	// reference data, such as the driver check on assignment.
	OrderCatalogUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// OrderCatalogUoWFactory creates new order+catalog unit of work instances.
	OrderCatalogUoWFactory interface {
		Create() OrderCatalogUoW
	}

	// CalendarUoW manages transactions for calendar-only operations.
	CalendarUoW interface {
		TxManager
		CalendarRepoFactory
	}

	// CalendarUoWFactory creates new calendar unit of work instances.
	CalendarUoWFactory interface {
		Create() CalendarUoW
	}

	// UoW spans orders, the calendar, and catalog reads. Used by the
	// fulfillment coordinator, which touches all three.
	UoW interface {
		TxManager
		OrderRepoFactory
		CalendarRepoFactory
		CatalogRepoFactory
	}

	// UoWFactory creates new unit of work instances for fulfillment.
	UoWFactory interface {
		Create() UoW
	}
)
