package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryStatus is the state machine tracking physical fulfillment of an
// order's deliveries. It is independent of the commercial Status: an Active
// order moves through this lifecycle as operations staff and drivers act.
//
// Legal forward transitions:
//
//	PendingAssignment ──> Assigned ──> OutForDelivery ──┬──> Delivered
//	                                                    └──> Failed
//	any non-terminal ──> DeliveryCancelled
//
// Assigned allows reassignment (Assigned -> Assigned).
// Delivered, Failed, and DeliveryCancelled are terminal.
//
// The typed transition methods enforce legality. Admin corrections may apply
// an illegal transition through the aggregate's override path; those are
// flagged to the caller for logging rather than rejected, since operations
// staff occasionally need to repair mistakes.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// PendingAssignment is the initial state after fulfillment: the order has
	// a complete schedule but no driver yet.
	PendingAssignment

	// Assigned means a driver has been attached to the order.
	Assigned

	// OutForDelivery means the driver is actively delivering.
	OutForDelivery

	// Delivered is the successful terminal state.
	Delivered

	// DeliveryFailed is the unsuccessful terminal state.
	DeliveryFailed

	// DeliveryCancelled terminates fulfillment before completion.
	DeliveryCancelled
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "Unknown",
		PendingAssignment: "PendingAssignment",
		Assigned:          "Assigned",
		OutForDelivery:    "OutForDelivery",
		Delivered:         "Delivered",
		DeliveryFailed:    "Failed",
		DeliveryCancelled: "Cancelled",
	}
}

// Validate checks that the value is one of the defined delivery statuses.
func (s DeliveryStatus) Validate() error {
	if s == DeliveryUnknown {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are expected.
func (s DeliveryStatus) IsTerminal() bool {
	return s == Delivered || s == DeliveryFailed || s == DeliveryCancelled
}

// CanTransitionTo reports whether moving to next is a legal transition.
// Used to flag (not forbid) suspicious admin corrections.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	if next == DeliveryCancelled {
		return !s.IsTerminal()
	}

	switch s {
	case PendingAssignment:
		return next == Assigned
	case Assigned:
		// Reassignment keeps the state at Assigned.
		return next == OutForDelivery || next == Assigned
	case OutForDelivery:
		return next == Delivered || next == DeliveryFailed
	default:
		return false
	}
}

// Assign transitions to Assigned. Legal from PendingAssignment and from
// Assigned (driver reassignment).
func (s DeliveryStatus) Assign() (DeliveryStatus, error) {
	if s != PendingAssignment && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%s is not a valid delivery status to assign from", s.String()))
	}
	return Assigned, nil
}

// Dispatch transitions to OutForDelivery. Legal only from Assigned.
func (s DeliveryStatus) Dispatch() (DeliveryStatus, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%s is not a valid delivery status to dispatch from", s.String()))
	}
	return OutForDelivery, nil
}

// Deliver transitions to Delivered. Legal only from OutForDelivery.
func (s DeliveryStatus) Deliver() (DeliveryStatus, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%s is not a valid delivery status to deliver from", s.String()))
	}
	return Delivered, nil
}

// Fail transitions to Failed. Legal only from OutForDelivery.
func (s DeliveryStatus) Fail() (DeliveryStatus, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%s is not a valid delivery status to fail from", s.String()))
	}
	return DeliveryFailed, nil
}

// Cancel transitions to Cancelled from any non-terminal state.
func (s DeliveryStatus) Cancel() (DeliveryStatus, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryStatus is invalid",
			fmt.Errorf("%s is terminal and cannot be cancelled", s.String()))
	}
	return DeliveryCancelled, nil
}
