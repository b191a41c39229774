package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSetOperationalDatesCommandIsNotConstructed = errors.New(
	"SetOperationalDatesCommand must be created via NewSetOperationalDatesCommand constructor",
)

// OperationalDateEntry is one raw calendar row as submitted by an admin.
// Dates arrive as "2006-01-02" strings and are validated into kernel.Day at
// command construction.
type OperationalDateEntry struct {
	Date            string
	DeliveryEnabled bool
	Notes           string
}

// SetOperationalDatesCommand is an admin request to configure one or more
// calendar days. All entries are attributed to the same admin and applied in
// one transaction.
type SetOperationalDatesCommand struct { //nolint:recvcheck //using for validation
	entries []*calendar.OperationalDate

	guard guard.ConstructorGuard
}

// NewSetOperationalDatesCommand validates every entry. A single malformed
// date rejects the whole command; partial calendar writes confuse admins
// more than a retry does.
func NewSetOperationalDatesCommand(
	setBy kernel.UUID,
	entries []OperationalDateEntry,
) (SetOperationalDatesCommand, error) {
	if len(entries) == 0 {
		return SetOperationalDatesCommand{}, errs.NewValueIsRequiredError("entries")
	}

	cmd := SetOperationalDatesCommand{
		entries: make([]*calendar.OperationalDate, 0, len(entries)),
		guard:   guard.NewConstructorGuard(),
	}

	var joined error
	for _, entry := range entries {
		day, err := kernel.DayFromString(entry.Date)
		if err != nil {
			joined = errors.Join(joined, err)
			continue
		}
		record, err := calendar.NewOperationalDate(day, entry.DeliveryEnabled, entry.Notes, setBy)
		if err != nil {
			joined = errors.Join(joined, err)
			continue
		}
		cmd.entries = append(cmd.entries, record)
	}
	if joined != nil {
		return SetOperationalDatesCommand{}, joined
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOperationalDatesCommand) Validate() error {
	return c.guard.Validate(ErrSetOperationalDatesCommandIsNotConstructed)
}

// Entries returns the validated calendar records to upsert.
func (c SetOperationalDatesCommand) Entries() []*calendar.OperationalDate {
	return c.entries
}
