package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func fulfillCommand(t *testing.T, customer *catalog.Customer, pkg *catalog.Package, amount int64) commands.FulfillPaymentCommand {
	t.Helper()
	cmd, err := commands.NewFulfillPaymentCommand(
		customer.ID, pkg.ID, "pi_test_1", "cus_test_1", amount, "usd", time.Now(), nil)
	require.NoError(t, err)
	return cmd
}

func TestFulfillPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))

	orderRepo := new(MockOrderRepository)
	calRepo := new(MockCalendarRepository)
	catRepo := new(MockCatalogRepository)
	geocoder := new(MockGeocoder)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CatalogRepository").Return(catRepo)
	uow.On("CalendarRepository").Return(calRepo)

	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).Return(customer, nil).Once()
	catRepo.On("GetPackage", ctx, pkg.ID).Return(pkg, nil).Once()
	geocoder.On("Geocode", mock.Anything, mock.AnythingOfType("order.DeliveryAddress")).
		Return(&ports.Coordinates{Latitude: 43.07, Longitude: -70.76}, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	calRepo.On("IsDeliveryDay", ctx, mock.AnythingOfType("kernel.Day")).Return(true, nil)

	h := commands.NewFulfillPaymentCommandHandler(factory, geocoder, discardLogger())
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.StatusActive, created.Status())
	assert.Equal(t, order.PendingAssignment, created.DeliveryStatus())
	assert.False(t, created.Driver().IsAssigned())
	assert.Len(t, created.Schedule(), 3)
	assert.True(t, created.StartDate().IsEqual(kernel.Today().AddDays(1)))
	assert.True(t, created.Address().HasCoordinates())
	assert.Equal(t, "pi_test_1", created.Payment().PaymentIntentID)

	orderRepo.AssertExpectations(t)
	catRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestFulfillPaymentCommandHandler_Handle_DuplicateEventReturnsExistingOrder(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))
	existing := fixtureOrder("pi_test_1", 3)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").Return(existing, nil).Once()

	h := commands.NewFulfillPaymentCommandHandler(factory, new(MockGeocoder), discardLogger())
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, existing, got)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestFulfillPaymentCommandHandler_Handle_CustomerNotFound(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))

	orderRepo := new(MockOrderRepository)
	catRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CatalogRepository").Return(catRepo).Once()
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).
		Return(nil, errs.NewObjectNotFoundError("customerId", customer.ID.String())).Once()

	h := commands.NewFulfillPaymentCommandHandler(factory, new(MockGeocoder), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestFulfillPaymentCommandHandler_Handle_AmountMismatch(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price)-1)

	orderRepo := new(MockOrderRepository)
	catRepo := new(MockCatalogRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CatalogRepository").Return(catRepo)
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).Return(customer, nil).Once()
	catRepo.On("GetPackage", ctx, pkg.ID).Return(pkg, nil).Once()

	h := commands.NewFulfillPaymentCommandHandler(factory, new(MockGeocoder), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestFulfillPaymentCommandHandler_Handle_SchedulingFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))

	orderRepo := new(MockOrderRepository)
	calRepo := new(MockCalendarRepository)
	catRepo := new(MockCatalogRepository)
	geocoder := new(MockGeocoder)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CatalogRepository").Return(catRepo)
	uow.On("CalendarRepository").Return(calRepo)
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).Return(customer, nil).Once()
	catRepo.On("GetPackage", ctx, pkg.ID).Return(pkg, nil).Once()
	geocoder.On("Geocode", mock.Anything, mock.AnythingOfType("order.DeliveryAddress")).
		Return(nil, nil).Once()

	// no day in the window permits deliveries
	calRepo.On("IsDeliveryDay", ctx, mock.AnythingOfType("kernel.Day")).Return(false, nil)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewFulfillPaymentCommandHandler(factory, geocoder, discardLogger())
	_, err := h.Handle(ctx, cmd)

	var schedErr *services.SchedulingError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, 3, schedErr.Requested)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestFulfillPaymentCommandHandler_Handle_GeocodingFailureIsAbsorbed(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(2)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))

	orderRepo := new(MockOrderRepository)
	calRepo := new(MockCalendarRepository)
	catRepo := new(MockCatalogRepository)
	geocoder := new(MockGeocoder)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CatalogRepository").Return(catRepo)
	uow.On("CalendarRepository").Return(calRepo)
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).Return(customer, nil).Once()
	catRepo.On("GetPackage", ctx, pkg.ID).Return(pkg, nil).Once()
	geocoder.On("Geocode", mock.Anything, mock.AnythingOfType("order.DeliveryAddress")).
		Return(nil, errors.New("provider unreachable")).Once()
	calRepo.On("IsDeliveryDay", ctx, mock.AnythingOfType("kernel.Day")).Return(true, nil)
	uow.On("Begin", ctx).Return(nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewFulfillPaymentCommandHandler(factory, geocoder, discardLogger())
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, created.Address().HasCoordinates())
	assert.Equal(t, customer.Street, created.Address().Street)
}

func TestFulfillPaymentCommandHandler_Handle_InsertRaceReturnsWinner(t *testing.T) {
	ctx := t.Context()
	customer := fixtureCustomer()
	pkg := fixturePackage(3)
	cmd := fulfillCommand(t, customer, pkg, order.PriceMinorUnits(pkg.Price))
	winner := fixtureOrder("pi_test_1", 3)

	orderRepo := new(MockOrderRepository)
	calRepo := new(MockCalendarRepository)
	catRepo := new(MockCatalogRepository)
	geocoder := new(MockGeocoder)
	uow := new(MockUoW)
	retryRepo := new(MockOrderRepository)
	retryUoW := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(retryUoW).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CatalogRepository").Return(catRepo)
	uow.On("CalendarRepository").Return(calRepo)
	orderRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").
		Return(nil, errs.NewObjectNotFoundError("paymentIntentId", "pi_test_1")).Once()
	catRepo.On("GetCustomer", ctx, customer.ID).Return(customer, nil).Once()
	catRepo.On("GetPackage", ctx, pkg.ID).Return(pkg, nil).Once()
	geocoder.On("Geocode", mock.Anything, mock.AnythingOfType("order.DeliveryAddress")).
		Return(nil, nil).Once()
	calRepo.On("IsDeliveryDay", ctx, mock.AnythingOfType("kernel.Day")).Return(true, nil)
	uow.On("Begin", ctx).Return(nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(ports.ErrPaymentIntentConflict).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	retryUoW.On("OrderRepository").Return(retryRepo).Once()
	retryRepo.On("GetByPaymentIntentID", ctx, "pi_test_1").Return(winner, nil).Once()

	h := commands.NewFulfillPaymentCommandHandler(factory, geocoder, discardLogger())
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, winner, got)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	factory.AssertExpectations(t)
}

func TestFulfillPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewFulfillPaymentCommandHandler(new(MockUoWFactory), new(MockGeocoder), discardLogger())

	_, err := h.Handle(ctx, commands.FulfillPaymentCommand{})

	require.ErrorIs(t, err, commands.ErrFulfillPaymentCommandIsNotConstructed)
}
