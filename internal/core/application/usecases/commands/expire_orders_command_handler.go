package commands

import (
	"context"
	"log/slog"
)

// ExpireOrdersCommandHandler flips Active orders whose last delivery date has
// passed to Expired. Only the commercial status changes; the delivery
// lifecycle is left alone.
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewExpireOrdersCommandHandler creates a handler for the expiration sweep.
func NewExpireOrdersCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "order_expiration"),
	}
}

// Handle expires all qualifying orders in one transaction and returns how
// many were expired.
func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ended, err := uow.OrderRepository().GetAllActiveEndedBefore(ctx, cmd.AsOf())
	if err != nil {
		return 0, err
	}
	if len(ended) == 0 {
		return 0, nil
	}

	for _, o := range ended {
		if err = o.Expire(); err != nil {
			return 0, err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "expired orders", "count", len(ended), "asOf", cmd.AsOf().String())
	return len(ended), nil
}
