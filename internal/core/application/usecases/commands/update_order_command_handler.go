package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies admin patches to an order. Every field is
// diffed against the current value; when nothing actually changes no write is
// issued and the unmodified order is returned. Driver assignments are checked
// against the driver reference data: the driver must exist and be active.
type UpdateOrderCommandHandler struct {
	uowFactory OrderCatalogUoWFactory
	logger     *slog.Logger
}

// NewUpdateOrderCommandHandler creates a handler for admin order updates.
func NewUpdateOrderCommandHandler(uowFactory OrderCatalogUoWFactory, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "order_tracker"),
	}
}

// Handle loads the order, applies the patch through the aggregate's setters,
// and persists only when at least one field changed.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	target, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := h.apply(ctx, uow, target, cmd.Patch())
	if err != nil {
		return nil, err
	}
	if !changed {
		h.logger.InfoContext(ctx, "order update is a no-op, skipping write",
			"orderId", target.ID().String())
		return target, nil
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}

//nolint:gocognit // one branch per patchable field
func (h *UpdateOrderCommandHandler) apply(
	ctx context.Context,
	uow OrderCatalogUoW,
	target *order.Order,
	patch OrderPatch,
) (bool, error) {
	changed := false
	var err error

	applyErr := func(c bool, e error) {
		changed = changed || c
		err = errors.Join(err, e)
	}

	if patch.Status != nil {
		applyErr(target.OverrideStatus(*patch.Status))
	}
	if patch.DeliveryStatus != nil {
		c, flagged, e := target.OverrideDeliveryStatus(*patch.DeliveryStatus)
		if flagged {
			h.logger.WarnContext(ctx, "admin override skips delivery state machine",
				"orderId", target.ID().String(), "to", patch.DeliveryStatus.String())
		}
		applyErr(c, e)
	}
	if patch.Driver != nil {
		if e := h.checkDriver(ctx, uow, *patch.Driver); e != nil {
			applyErr(false, e)
		} else {
			changed = target.SetDriver(*patch.Driver) || changed
		}
	}
	if patch.ClearDeliverySequence {
		changed = target.SetDeliverySequence(nil) || changed
	} else if patch.DeliverySequence != nil {
		changed = target.SetDeliverySequence(patch.DeliverySequence) || changed
	}
	if patch.ClearProofOfDelivery {
		changed = target.SetProofOfDeliveryURL(nil) || changed
	} else if patch.ProofOfDeliveryURL != nil {
		changed = target.SetProofOfDeliveryURL(patch.ProofOfDeliveryURL) || changed
	}
	if patch.Address != nil {
		changed = target.SetAddress(mergeAddress(target.Address(), *patch.Address)) || changed
	}
	if patch.StartDate != nil {
		applyErr(target.SetStartDate(*patch.StartDate))
	}
	if patch.EndDate != nil {
		applyErr(target.SetEndDate(*patch.EndDate))
	}
	if patch.PackageName != nil {
		applyErr(target.SetPackageName(*patch.PackageName))
	}
	if patch.PackagePrice != nil {
		applyErr(target.SetPackagePrice(*patch.PackagePrice))
	}
	if patch.DeliveryDays != nil {
		applyErr(target.SetDeliveryDays(*patch.DeliveryDays))
	}

	if err != nil {
		return false, err
	}
	return changed, nil
}

// checkDriver verifies an assignment target against the driver reference
// data. Unassignment needs no lookup; a missing driver surfaces as NotFound,
// an inactive one as Validation.
func (h *UpdateOrderCommandHandler) checkDriver(
	ctx context.Context,
	uow OrderCatalogUoW,
	ref order.DriverRef,
) error {
	id, ok := ref.ID()
	if !ok {
		return nil
	}

	driver, err := uow.CatalogRepository().GetDriver(ctx, id)
	if err != nil {
		return err
	}
	if !driver.Active {
		return errs.NewValueIsInvalidErrorWithCause("assignedDriver",
			fmt.Errorf("driver %s is inactive", id.String()))
	}
	return nil
}

// mergeAddress overlays the present patch fields onto the current snapshot.
func mergeAddress(current order.DeliveryAddress, patch AddressPatch) order.DeliveryAddress {
	merged := current
	if patch.Street != nil {
		merged.Street = *patch.Street
	}
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.State != nil {
		merged.State = *patch.State
	}
	if patch.PostalCode != nil {
		merged.PostalCode = *patch.PostalCode
	}
	if patch.Latitude != nil {
		merged.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		merged.Longitude = patch.Longitude
	}
	return merged
}
