package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrExpireOrdersCommandIsNotConstructed = errors.New(
	"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
)

// ExpireOrdersCommand asks to expire every Active order whose schedule
// finished before the given day. The job passes today (UTC); tests pass
// fixed days.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	asOf kernel.Day

	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand validates the cutoff day.
func NewExpireOrdersCommand(asOf kernel.Day) (ExpireOrdersCommand, error) {
	if err := asOf.Validate(); err != nil {
		return ExpireOrdersCommand{}, err
	}

	return ExpireOrdersCommand{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// AsOf returns the cutoff day; orders ending before it expire.
func (c ExpireOrdersCommand) AsOf() kernel.Day { return c.asOf }
