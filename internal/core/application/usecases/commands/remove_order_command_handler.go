package commands

import (
	"context"
	"log/slog"
)

// RemoveOrderCommandHandler hard-deletes an order. The order must exist;
// deleting an unknown id is a NotFound, not a silent success, so admins learn
// about stale ids.
type RemoveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewRemoveOrderCommandHandler creates a handler for order removal.
func NewRemoveOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) RemoveOrderCommandHandler {
	return RemoveOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "order_tracker"),
	}
}

// Handle deletes the order inside a transaction.
func (h *RemoveOrderCommandHandler) Handle(ctx context.Context, cmd RemoveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Delete(ctx, target.ID()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order removed",
		"orderId", target.ID().String(), "orderNumber", target.OrderNumber())
	return nil
}
