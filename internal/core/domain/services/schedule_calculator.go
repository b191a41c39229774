package services

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DefaultMaxSearchWindowDays bounds how far ahead the calculator scans for
// enabled delivery days before giving up.
const DefaultMaxSearchWindowDays = 90

// DeliveryDayChecker answers whether one calendar day permits deliveries.
// Implemented by the operational-calendar repository; kept as a local
// interface so the domain service stays independent of the ports package.
type DeliveryDayChecker interface {
	IsDeliveryDay(ctx context.Context, day kernel.Day) (bool, error)
}

// SchedulingError reports that the operational calendar did not contain
// enough enabled days inside the search window. It is a Validation-class
// failure: the caller must abort and persist nothing.
type SchedulingError struct {
	Requested  int
	Found      int
	WindowDays int
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf(
		"insufficient delivery dates: found %d of %d requested within %d days",
		e.Found, e.Requested, e.WindowDays)
}

func (e *SchedulingError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// ScheduleCalculator turns "N deliveries starting from day X" into a concrete
// ascending list of enabled calendar dates.
//
// The scan is deterministic: for a fixed calendar state and fixed inputs the
// output is always the same. A lookup failure for a single day is logged and
// treated as "not enabled", and scanning continues. Losing one candidate day is
// a better outcome than failing a paid order over a transient read error;
// genuine store outages fail enough days that the shortfall error surfaces
// anyway.
type ScheduleCalculator struct {
	calendar   DeliveryDayChecker
	windowDays int
	logger     *slog.Logger
}

// NewScheduleCalculator creates a calculator scanning at most windowDays
// days. Pass 0 to use DefaultMaxSearchWindowDays.
func NewScheduleCalculator(calendar DeliveryDayChecker, windowDays int, logger *slog.Logger) ScheduleCalculator {
	if windowDays <= 0 {
		windowDays = DefaultMaxSearchWindowDays
	}
	return ScheduleCalculator{
		calendar:   calendar,
		windowDays: windowDays,
		logger:     logger.With("component", "schedule_calculator"),
	}
}

// Calculate scans forward one day at a time from firstCandidate and collects
// the first count enabled days. Returns a SchedulingError when the window is
// exhausted before count days are found.
func (c ScheduleCalculator) Calculate(
	ctx context.Context,
	firstCandidate kernel.Day,
	count int,
) ([]kernel.Day, error) {
	if err := firstCandidate.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("count", count, 1, c.windowDays)
	}

	schedule := make([]kernel.Day, 0, count)
	for offset := 0; offset < c.windowDays && len(schedule) < count; offset++ {
		day := firstCandidate.AddDays(offset)

		enabled, err := c.calendar.IsDeliveryDay(ctx, day)
		if err != nil {
			c.logger.WarnContext(ctx, "calendar lookup failed, treating day as not enabled",
				"day", day.String(), "error", err)
			continue
		}
		if enabled {
			schedule = append(schedule, day)
		}
	}

	if len(schedule) < count {
		return nil, &SchedulingError{
			Requested:  count,
			Found:      len(schedule),
			WindowDays: c.windowDays,
		}
	}

	return schedule, nil
}
