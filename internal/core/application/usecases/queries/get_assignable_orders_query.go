package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAssignableOrdersQueryIsNotConstructed = errors.New(
	"GetAssignableOrdersQuery must be created via NewGetAssignableOrdersQuery constructor",
)

// GetAssignableOrdersQuery retrieves the active orders still waiting for a
// driver, the pool dispatchers assign from.
type GetAssignableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignableOrdersQuery creates a query for the unassigned order pool.
func NewGetAssignableOrdersQuery() GetAssignableOrdersQuery {
	return GetAssignableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignableOrdersQueryIsNotConstructed)
}

// GetAssignableOrdersQueryResponse is one order awaiting driver assignment.
type GetAssignableOrdersQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	CustomerName string
	Address      AddressView
	StartDate    kernel.Day
	EndDate      kernel.Day
}
