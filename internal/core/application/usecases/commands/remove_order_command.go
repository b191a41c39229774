package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveOrderCommandIsNotConstructed = errors.New(
	"RemoveOrderCommand must be created via NewRemoveOrderCommand constructor",
)

// RemoveOrderCommand is an admin request to permanently delete an order.
// Compensating actions such as refunds happen outside this service.
type RemoveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveOrderCommand validates the target order identifier.
func NewRemoveOrderCommand(orderID kernel.UUID) (RemoveOrderCommand, error) {
	cmd := RemoveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return RemoveOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	cmd.orderID = orderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to delete.
func (c RemoveOrderCommand) OrderID() kernel.UUID { return c.orderID }
