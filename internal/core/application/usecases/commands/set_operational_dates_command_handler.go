package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/calendar"
)

// SetOperationalDatesCommandHandler upserts operational-calendar records.
// Days already configured are overwritten; days are never deleted.
type SetOperationalDatesCommandHandler struct {
	uowFactory CalendarUoWFactory
	logger     *slog.Logger
}

// NewSetOperationalDatesCommandHandler creates a handler for calendar upserts.
func NewSetOperationalDatesCommandHandler(
	uowFactory CalendarUoWFactory,
	logger *slog.Logger,
) SetOperationalDatesCommandHandler {
	return SetOperationalDatesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "operational_calendar"),
	}
}

// Handle upserts all entries in one transaction and returns the stored
// records.
func (h *SetOperationalDatesCommandHandler) Handle(
	ctx context.Context,
	cmd SetOperationalDatesCommand,
) ([]*calendar.OperationalDate, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stored, err := uow.CalendarRepository().UpsertMany(ctx, cmd.Entries())
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "operational dates configured", "count", len(stored))
	return stored, nil
}
