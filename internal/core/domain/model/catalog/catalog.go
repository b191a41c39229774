// Package catalog holds the read-only reference entities the fulfillment
// core depends on: customers, subscription packages, and drivers. Their
// write paths (CRUD, auth) live outside this service; the core only reads
// them to build orders and validate assignments.
package catalog

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Customer is the purchasing account. The address fields are the source the
// order's delivery address snapshot is copied from.
type Customer struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
}

// DeliveryAddress builds the order's address snapshot from the customer's
// stored address fields.
func (c Customer) DeliveryAddress() order.DeliveryAddress {
	return order.DeliveryAddress{
		Street:     c.Street,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
	}
}

// Package is a purchasable multi-day delivery subscription.
type Package struct {
	ID           kernel.UUID
	Name         string
	Price        float64
	DeliveryDays int
}

// Snapshot returns the denormalized copy stored on orders at purchase time.
func (p Package) Snapshot() order.PackageSnapshot {
	return order.PackageSnapshot{
		Name:         p.Name,
		Price:        p.Price,
		DeliveryDays: p.DeliveryDays,
	}
}

// Driver is a delivery driver. Only identity and the active flag matter to
// the core; inactive drivers must not receive new assignments.
type Driver struct {
	ID     kernel.UUID
	Name   string
	Active bool
}
