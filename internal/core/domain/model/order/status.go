package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the overall commercial state of an order, distinct from
// the delivery lifecycle tracked by DeliveryStatus.
//
// Transitions:
//
//	Active ──┬──> Expired    (end date passed, background job)
//	         └──> Cancelled  (admin action)
//
// Expired and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusActive is the initial status of every fulfilled order.
	StatusActive

	// StatusExpired marks orders whose delivery window has passed.
	// Set only by the background expiration process.
	StatusExpired

	// StatusCancelled marks orders cancelled by operations staff.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusActive:    "Active",
		StatusExpired:   "Expired",
		StatusCancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusActive:    "Active",
		StatusExpired:   "Expired",
		StatusCancelled: "Cancelled",
	}
}

// Validate checks that the value is one of the defined statuses.
// Used when reconstructing orders from persistence or admin input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Expire transitions the status to Expired.
// Only Active orders expire; terminal statuses are left untouched.
func (s Status) Expire() (Status, error) {
	if s != StatusActive {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to expire", s.String()))
	}
	return StatusExpired, nil
}

// Cancel transitions the status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusActive {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}
	return StatusCancelled, nil
}
