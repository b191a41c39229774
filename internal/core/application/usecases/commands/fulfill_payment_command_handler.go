package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// defaultGeocodeTimeout bounds the address-resolution call so an unresponsive
// geocoding provider cannot stall order creation.
const defaultGeocodeTimeout = 5 * time.Second

// FulfillPaymentCommandHandler is the order fulfillment coordinator. For each
// confirmed payment it creates exactly one order with a complete delivery
// schedule, or returns the order a previous invocation already created.
//
// The transaction opens only after all external reads (idempotency lookup,
// catalog fetches, geocoding) are done, so no lock is held across a network
// call.
type FulfillPaymentCommandHandler struct {
	uowFactory     UoWFactory
	geocoder       ports.Geocoder
	geocodeTimeout time.Duration
	logger         *slog.Logger
}

// NewFulfillPaymentCommandHandler creates the coordinator.
func NewFulfillPaymentCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	logger *slog.Logger,
) FulfillPaymentCommandHandler {
	return FulfillPaymentCommandHandler{
		uowFactory:     uowFactory,
		geocoder:       geocoder,
		geocodeTimeout: defaultGeocodeTimeout,
		logger:         logger.With("component", "fulfillment_coordinator"),
	}
}

// Handle fulfills a confirmed payment and returns the resulting order.
// A repeated event for the same payment intent returns the existing order
// without error.
func (h *FulfillPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd FulfillPaymentCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	existing, err := uow.OrderRepository().GetByPaymentIntentID(ctx, cmd.PaymentIntentID())
	if err == nil {
		h.logger.InfoContext(ctx, "duplicate payment event, returning existing order",
			"paymentIntentId", cmd.PaymentIntentID(), "orderId", existing.ID().String())
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	customer, err := uow.CatalogRepository().GetCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	pkg, err := uow.CatalogRepository().GetPackage(ctx, cmd.PackageID())
	if err != nil {
		return nil, err
	}

	expected := order.PriceMinorUnits(pkg.Price)
	if cmd.AmountPaid() != expected {
		return nil, errs.NewValueIsInvalidErrorWithCause("amountPaid",
			fmt.Errorf("amount mismatch: paid %d, package %q costs %d", cmd.AmountPaid(), pkg.Name, expected))
	}

	address := h.geocode(ctx, customer.DeliveryAddress())

	payment, err := order.NewPaymentDetails(
		cmd.PaymentIntentID(),
		cmd.GatewayCustomerID(),
		cmd.AmountPaid(),
		cmd.Currency(),
		cmd.PaymentDate(),
		cmd.Card(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	calculator := services.NewScheduleCalculator(uow.CalendarRepository(), 0, h.logger)
	schedule, err := calculator.Calculate(ctx, kernel.DayOf(now).AddDays(1), pkg.DeliveryDays)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewOrderNumber(now),
		customer.ID,
		pkg.ID,
		pkg.Snapshot(),
		schedule,
		address,
		payment,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		if errors.Is(err, ports.ErrPaymentIntentConflict) {
			return h.recoverFromConflict(ctx, cmd.PaymentIntentID())
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, ports.ErrPaymentIntentConflict) {
			return h.recoverFromConflict(ctx, cmd.PaymentIntentID())
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "order fulfilled",
		"orderId", created.ID().String(),
		"orderNumber", created.OrderNumber(),
		"paymentIntentId", cmd.PaymentIntentID(),
		"deliveries", len(schedule))
	return created, nil
}

// recoverFromConflict handles a concurrent duplicate event that won the race
// past the fast-path lookup. The rolled-back transaction is abandoned and the
// winner's order is fetched on a fresh unit of work.
func (h *FulfillPaymentCommandHandler) recoverFromConflict(
	ctx context.Context,
	paymentIntentID string,
) (*order.Order, error) {
	h.logger.InfoContext(ctx, "lost fulfillment race, returning winner's order",
		"paymentIntentId", paymentIntentID)
	return h.uowFactory.Create().OrderRepository().GetByPaymentIntentID(ctx, paymentIntentID)
}

// geocode resolves coordinates for the address snapshot. Every failure mode
// is absorbed: an order with a plain-text address beats no order at all.
func (h *FulfillPaymentCommandHandler) geocode(
	ctx context.Context,
	address order.DeliveryAddress,
) order.DeliveryAddress {
	geocodeCtx, cancel := context.WithTimeout(ctx, h.geocodeTimeout)
	defer cancel()

	coords, err := h.geocoder.Geocode(geocodeCtx, address)
	if err != nil {
		h.logger.WarnContext(ctx, "geocoding failed, storing address without coordinates",
			"address", address.Line(), "error", err)
		return address
	}
	if coords == nil {
		h.logger.InfoContext(ctx, "address not found by geocoder", "address", address.Line())
		return address
	}
	return address.WithCoordinates(coords.Latitude, coords.Longitude)
}
