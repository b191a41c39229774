package kernel

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DayLayout is the wire and storage format for calendar days.
const DayLayout = "2006-01-02"

// ErrDayIsNotConstructed is returned when a zero-value Day is used.
// Days must be created via DayOf, DayFromString, or Today.
var ErrDayIsNotConstructed = errs.NewValueIsRequiredError(
	"day must be created via DayOf, DayFromString, or Today")

// Day is a calendar day normalized to midnight UTC. It is the single date
// representation shared by the operational calendar, the schedule calculator,
// and order delivery schedules, which keeps date comparisons free of
// timezone drift between components.
//
// Day is an immutable value object; the zero value is invalid.
//
// Example:
//
//	start := kernel.DayOf(time.Now())
//	next := start.AddDays(1)
//	fmt.Println(next) // e.g. "2026-08-24"
type Day struct { //nolint:recvcheck //using for validation
	t     time.Time
	guard guard.ConstructorGuard
}

// DayOf truncates an instant to its UTC calendar day.
// Any time-of-day and zone information is discarded.
func DayOf(instant time.Time) Day {
	utc := instant.UTC()
	return Day{
		t:     time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC),
		guard: guard.NewConstructorGuard(),
	}
}

// Today returns the current UTC calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// DayFromString parses a "2006-01-02" string into a Day.
// Malformed input yields a Validation error, which is how admin-supplied
// date strings are rejected at the boundary.
func DayFromString(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not a valid date: %w", s, err))
	}
	return DayOf(t), nil
}

// Validate returns ErrDayIsNotConstructed for the zero value.
func (d Day) Validate() error {
	return d.guard.Validate(ErrDayIsNotConstructed)
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.t.AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// IsEqual reports whether two values denote the same calendar day.
func (d Day) IsEqual(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is earlier than d.
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Time returns the canonical instant (midnight UTC) for persistence.
func (d Day) Time() time.Time {
	return d.t
}

// String implements fmt.Stringer using DayLayout.
func (d Day) String() string {
	return d.t.Format(DayLayout)
}
