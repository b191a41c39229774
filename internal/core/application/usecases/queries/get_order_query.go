// Package queries contains the read side of the fulfillment core. Query
// handlers bypass the aggregate layer and read projections straight from the
// database with raw SQL, joining in the reference data admins expect to see.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its customer, package, and driver
// projected in.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the order identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// AddressView is the delivery address as shown to admins.
type AddressView struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// DriverView is the assigned driver as shown to admins.
type DriverView struct {
	ID   kernel.UUID
	Name string
}

// GetOrderQueryResponse is the full order projection.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Status         order.Status
	DeliveryStatus order.DeliveryStatus

	CustomerID    kernel.UUID
	CustomerName  string
	CustomerPhone string

	PackageID    kernel.UUID
	PackageName  string
	PackagePrice float64
	DeliveryDays int

	Schedule  []kernel.Day
	StartDate kernel.Day
	EndDate   kernel.Day

	Driver             *DriverView
	DeliverySequence   *int
	ProofOfDeliveryURL *string

	Address AddressView

	PaymentIntentID string
	AmountPaid      int64
	Currency        string
}
