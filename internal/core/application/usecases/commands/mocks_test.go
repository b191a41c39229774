package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActiveEndedBefore(ctx context.Context, day kernel.Day) ([]*order.Order, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCalendarRepository struct{ mock.Mock }

func (m *MockCalendarRepository) UpsertMany(ctx context.Context, entries []*calendar.OperationalDate) ([]*calendar.OperationalDate, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*calendar.OperationalDate), args.Error(1)
}

func (m *MockCalendarRepository) GetRange(ctx context.Context, from, to kernel.Day) ([]*calendar.OperationalDate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*calendar.OperationalDate), args.Error(1)
}

func (m *MockCalendarRepository) GetStatus(ctx context.Context, day kernel.Day) (*calendar.OperationalDate, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.OperationalDate), args.Error(1)
}

func (m *MockCalendarRepository) IsDeliveryDay(ctx context.Context, day kernel.Day) (bool, error) {
	args := m.Called(ctx, day)
	return args.Bool(0), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetCustomer(ctx context.Context, id kernel.UUID) (*catalog.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Customer), args.Error(1)
}

func (m *MockCatalogRepository) GetPackage(ctx context.Context, id kernel.UUID) (*catalog.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

func (m *MockCatalogRepository) GetDriver(ctx context.Context, id kernel.UUID) (*catalog.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Driver), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address order.DeliveryAddress) (*ports.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Coordinates), args.Error(1)
}

// MockUoW serves all three repository factories plus the transaction
// lifecycle, so one mock type covers every handler.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CalendarRepository() ports.CalendarRepository {
	args := m.Called()
	return args.Get(0).(ports.CalendarRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderCatalogUoWFactory struct{ mock.Mock }

func (m *MockOrderCatalogUoWFactory) Create() commands.OrderCatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderCatalogUoW)
}

type MockCalendarUoWFactory struct{ mock.Mock }

func (m *MockCalendarUoWFactory) Create() commands.CalendarUoW {
	args := m.Called()
	return args.Get(0).(commands.CalendarUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fixtures shared across handler tests.

func fixtureCustomer() *catalog.Customer {
	return &catalog.Customer{
		ID:         kernel.NewUUID(),
		Name:       "Dana Field",
		Phone:      "+15550100",
		Street:     "12 Harbor Rd",
		City:       "Portsmouth",
		State:      "NH",
		PostalCode: "03801",
	}
}

func fixturePackage(deliveryDays int) *catalog.Package {
	return &catalog.Package{
		ID:           kernel.NewUUID(),
		Name:         "Weekly Essentials",
		Price:        49.90,
		DeliveryDays: deliveryDays,
	}
}

func fixtureSchedule(first kernel.Day, count int) []kernel.Day {
	schedule := make([]kernel.Day, count)
	for i := range schedule {
		schedule[i] = first.AddDays(i)
	}
	return schedule
}

func fixtureOrder(paymentIntentID string, deliveryDays int) *order.Order {
	pkg := fixturePackage(deliveryDays)
	payment, err := order.NewPaymentDetails(
		paymentIntentID, "cus_fixture", order.PriceMinorUnits(pkg.Price), "usd", time.Now(), nil)
	if err != nil {
		panic(err)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewOrderNumber(time.Now()),
		kernel.NewUUID(),
		pkg.ID,
		pkg.Snapshot(),
		fixtureSchedule(kernel.Today().AddDays(1), deliveryDays),
		order.DeliveryAddress{Street: "12 Harbor Rd", City: "Portsmouth", State: "NH", PostalCode: "03801"},
		payment,
	)
	if err != nil {
		panic(err)
	}
	return o
}
