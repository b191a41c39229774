package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// AddressPatch is a partial update of the delivery address snapshot. Fields
// left nil keep their current value.
type AddressPatch struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Latitude   *float64
	Longitude  *float64
}

// OrderPatch is the allow-list of admin-editable order fields. A nil field
// means "leave unchanged"; the explicit Clear flags express "set to empty",
// which a nil pointer cannot. Fields outside this struct simply cannot be
// patched.
type OrderPatch struct {
	Status         *order.Status
	DeliveryStatus *order.DeliveryStatus
	Driver         *order.DriverRef

	DeliverySequence      *int
	ClearDeliverySequence bool

	ProofOfDeliveryURL   *string
	ClearProofOfDelivery bool

	Address   *AddressPatch
	StartDate *kernel.Day
	EndDate   *kernel.Day

	PackageName  *string
	PackagePrice *float64
	DeliveryDays *int
}

// IsEmpty reports whether the patch touches no field at all.
func (p OrderPatch) IsEmpty() bool {
	return p.Status == nil &&
		p.DeliveryStatus == nil &&
		p.Driver == nil &&
		p.DeliverySequence == nil && !p.ClearDeliverySequence &&
		p.ProofOfDeliveryURL == nil && !p.ClearProofOfDelivery &&
		p.Address == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		p.PackageName == nil &&
		p.PackagePrice == nil &&
		p.DeliveryDays == nil
}

// UpdateOrderCommand is an admin request to patch one order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   OrderPatch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the target id and rejects empty patches.
// Enum values inside the patch are validated here so the handler never sees
// an unknown status.
func NewUpdateOrderCommand(orderID kernel.UUID, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return UpdateOrderCommand{}, err
	}
	if patch.IsEmpty() {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("patch")
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if patch.DeliveryStatus != nil {
		if err := patch.DeliveryStatus.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Patch returns the requested field changes.
func (c UpdateOrderCommand) Patch() OrderPatch { return c.patch }

func (c *UpdateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}
