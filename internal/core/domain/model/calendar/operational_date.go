package calendar

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrOperationalDateIsNotConstructed is returned when an OperationalDate was
// not created through NewOperationalDate or RestoreOperationalDate.
var ErrOperationalDateIsNotConstructed = errors.New(
	"OperationalDate must be created via NewOperationalDate constructor")

// OperationalDate records, for one calendar day, whether deliveries are
// permitted, together with the admin who set it and an optional note.
// At most one record exists per day; records are upserted by admins and
// never deleted in normal operation.
type OperationalDate struct {
	// day is the unique per-day key, normalized to midnight UTC.
	day kernel.Day

	// deliveryEnabled is the switch the schedule calculator consults.
	deliveryEnabled bool

	// notes is free-form admin commentary ("public holiday", "depot closed").
	notes string

	// setBy attributes the last change to an admin.
	setBy kernel.UUID

	isConstructed bool
}

// NewOperationalDate creates a validated calendar record for one day.
func NewOperationalDate(day kernel.Day, deliveryEnabled bool, notes string, setBy kernel.UUID) (*OperationalDate, error) {
	if err := errors.Join(day.Validate(), setBy.Validate()); err != nil {
		return nil, err
	}

	return &OperationalDate{
		day:             day,
		deliveryEnabled: deliveryEnabled,
		notes:           notes,
		setBy:           setBy,
		isConstructed:   true,
	}, nil
}

// RestoreOperationalDate reconstructs a record from persistence.
// It applies the same validation as NewOperationalDate.
func RestoreOperationalDate(day kernel.Day, deliveryEnabled bool, notes string, setBy kernel.UUID) (*OperationalDate, error) {
	return NewOperationalDate(day, deliveryEnabled, notes, setBy)
}

// Validate ensures the record came from a constructor.
func (d *OperationalDate) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrOperationalDateIsNotConstructed
	}
	return nil
}

// Day returns the calendar day this record configures.
func (d *OperationalDate) Day() kernel.Day {
	return d.day
}

// DeliveryEnabled reports whether deliveries are permitted on the day.
func (d *OperationalDate) DeliveryEnabled() bool {
	return d.deliveryEnabled
}

// Notes returns the admin note attached to the day.
func (d *OperationalDate) Notes() string {
	return d.notes
}

// SetBy returns the admin who last configured the day.
func (d *OperationalDate) SetBy() kernel.UUID {
	return d.setBy
}
