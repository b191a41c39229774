package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOperationalDatesQueryIsNotConstructed = errors.New(
	"GetOperationalDatesQuery must be created via NewGetOperationalDatesQuery constructor",
)

// GetOperationalDatesQuery retrieves the calendar records inside an inclusive
// date range.
type GetOperationalDatesQuery struct { //nolint:recvcheck //using for validation
	from kernel.Day
	to   kernel.Day

	guard guard.ConstructorGuard
}

// NewGetOperationalDatesQuery parses and validates the range boundaries.
// Dates arrive as "2006-01-02" strings from the admin surface.
func NewGetOperationalDatesQuery(from, to string) (GetOperationalDatesQuery, error) {
	fromDay, err := kernel.DayFromString(from)
	if err != nil {
		return GetOperationalDatesQuery{}, err
	}
	toDay, err := kernel.DayFromString(to)
	if err != nil {
		return GetOperationalDatesQuery{}, err
	}
	if toDay.Before(fromDay) {
		return GetOperationalDatesQuery{}, errs.NewValueIsInvalidError("dateRange")
	}

	return GetOperationalDatesQuery{
		from:  fromDay,
		to:    toDay,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOperationalDatesQuery) Validate() error {
	return q.guard.Validate(ErrGetOperationalDatesQueryIsNotConstructed)
}

// From returns the inclusive range start.
func (q GetOperationalDatesQuery) From() kernel.Day { return q.from }

// To returns the inclusive range end.
func (q GetOperationalDatesQuery) To() kernel.Day { return q.to }

// GetOperationalDatesQueryResponse is one configured calendar day.
type GetOperationalDatesQueryResponse struct {
	Day             kernel.Day
	DeliveryEnabled bool
	Notes           string
	SetBy           kernel.UUID
}
