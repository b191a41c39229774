package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery retrieves the orders currently assigned to one driver,
// the route listing drivers work from.
type GetDriverOrdersQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverOrdersQuery validates the driver identifier.
func NewGetDriverOrdersQuery(driverID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	return GetDriverOrdersQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

// DriverID returns the driver whose orders are requested.
func (q GetDriverOrdersQuery) DriverID() kernel.UUID { return q.driverID }

// GetDriverOrdersQueryResponse is one order on a driver's route.
type GetDriverOrdersQueryResponse struct {
	ID               kernel.UUID
	OrderNumber      string
	DeliveryStatus   order.DeliveryStatus
	DeliverySequence *int
	CustomerName     string
	Address          AddressView
	StartDate        kernel.Day
	EndDate          kernel.Day
}
