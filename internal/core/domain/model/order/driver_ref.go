package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DriverRef is a small sum type for an order's driver assignment:
// either no driver, or exactly one driver identified by UUID.
// It replaces loosely shaped payloads (null | raw id | object) with a value
// that is parsed once at the boundary and unambiguous everywhere else.
type DriverRef struct {
	assigned bool
	id       kernel.UUID
}

// NoDriver returns the unassigned variant.
func NoDriver() DriverRef {
	return DriverRef{}
}

// DriverByID returns the assigned variant for a validated driver id.
func DriverByID(id kernel.UUID) (DriverRef, error) {
	if err := id.Validate(); err != nil {
		return DriverRef{}, err
	}
	return DriverRef{assigned: true, id: id}, nil
}

// ParseDriverRef normalizes the shapes an admin payload may carry for a
// driver reference:
//
//   - nil                      -> unassigned
//   - string                   -> driver id
//   - map with "id" or "_id"   -> driver id taken from the map
//   - kernel.UUID / DriverRef  -> passed through
//
// Any other shape is a Validation error. Rejecting instead of silently
// ignoring makes malformed admin requests visible.
func ParseDriverRef(value any) (DriverRef, error) {
	switch v := value.(type) {
	case nil:
		return NoDriver(), nil
	case DriverRef:
		return v, nil
	case kernel.UUID:
		return DriverByID(v)
	case string:
		id, err := kernel.UUIDFromString(v)
		if err != nil {
			return DriverRef{}, errs.NewValueIsInvalidErrorWithCause("assignedDriver", err)
		}
		return DriverByID(id)
	case map[string]any:
		raw, ok := v["id"]
		if !ok {
			raw, ok = v["_id"]
		}
		if !ok {
			return DriverRef{}, errs.NewValueIsInvalidErrorWithCause("assignedDriver",
				fmt.Errorf("object form must carry an id field"))
		}
		s, ok := raw.(string)
		if !ok {
			return DriverRef{}, errs.NewValueIsInvalidErrorWithCause("assignedDriver",
				fmt.Errorf("id field must be a string, got %T", raw))
		}
		return ParseDriverRef(s)
	default:
		return DriverRef{}, errs.NewValueIsInvalidErrorWithCause("assignedDriver",
			fmt.Errorf("unsupported driver reference shape %T", value))
	}
}

// IsAssigned reports whether a driver is attached.
func (r DriverRef) IsAssigned() bool {
	return r.assigned
}

// ID returns the driver id and whether one is present.
func (r DriverRef) ID() (kernel.UUID, bool) {
	return r.id, r.assigned
}

// IsEqual reports whether two references denote the same assignment state.
func (r DriverRef) IsEqual(other DriverRef) bool {
	if r.assigned != other.assigned {
		return false
	}
	return !r.assigned || r.id.IsEqual(other.id)
}

// String renders "unassigned" or the driver id, for logs.
func (r DriverRef) String() string {
	if !r.assigned {
		return "unassigned"
	}
	return r.id.String()
}
