package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/calendarrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// mockAggregateTracker is a no-op tracker for seeding through the repository.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

// QueryHandlersIntegrationTestSuite verifies the read-side projections
// against a real PostgreSQL database. All three handlers share one seeded
// container: a customer, a driver, and the orders each test creates.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	orderHandler            queries.GetOrderQueryHandler
	driverOrdersHandler     queries.GetDriverOrdersQueryHandler
	assignableOrdersHandler queries.GetAssignableOrdersQueryHandler
	calendarHandler         queries.GetOperationalDatesQueryHandler

	orderRepo    *orderrepo.GormOrderRepository
	calendarRepo *calendarrepo.GormCalendarRepository

	customerID kernel.UUID
	driverID   kernel.UUID
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.DeliveryDateDTO{},
		&calendarrepo.OperationalDateDTO{},
		&catalogrepo.CustomerDTO{},
		&catalogrepo.PackageDTO{},
		&catalogrepo.DriverDTO{},
	)
	suite.Require().NoError(err)

	suite.orderHandler = queries.NewGetOrderQueryHandler(db)
	suite.driverOrdersHandler = queries.NewGetDriverOrdersQueryHandler(db)
	suite.assignableOrdersHandler = queries.NewGetAssignableOrdersQueryHandler(db)
	suite.calendarHandler = queries.NewGetOperationalDatesQueryHandler(db)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
	suite.calendarRepo = calendarrepo.NewGormCalendarRepository(db)

	// Reference data the projections join against.
	suite.customerID = kernel.NewUUID()
	suite.Require().NoError(db.Create(&catalogrepo.CustomerDTO{
		ID:         suite.customerID.Bytes(),
		Name:       "Dana Field",
		Phone:      "603-555-0142",
		Street:     "12 Harbor Rd",
		City:       "Portsmouth",
		State:      "NH",
		PostalCode: "03801",
	}).Error)

	suite.driverID = kernel.NewUUID()
	suite.Require().NoError(db.Create(&catalogrepo.DriverDTO{
		ID:     suite.driverID.Bytes(),
		Name:   "Marcus Webb",
		Active: true,
	}).Error)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_deliveries, operational_dates").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ProjectsFullOrder() {
	ctx := context.Background()

	testOrder := suite.createOrder("pi_proj_1", "ORD-20260901-000001")
	suite.Require().NoError(testOrder.AssignDriver(suite.driverID))
	seq := 2
	testOrder.SetDeliverySequence(&seq)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	resp, err := suite.orderHandler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), resp.ID)
	suite.Equal("ORD-20260901-000001", resp.OrderNumber)
	suite.Equal(order.StatusActive, resp.Status)
	suite.Equal(order.Assigned, resp.DeliveryStatus)

	suite.Equal(suite.customerID, resp.CustomerID)
	suite.Equal("Dana Field", resp.CustomerName)
	suite.Equal("603-555-0142", resp.CustomerPhone)

	suite.Equal("Weekly Essentials", resp.PackageName)
	suite.InDelta(49.90, resp.PackagePrice, 0.001)
	suite.Equal(3, resp.DeliveryDays)

	suite.Require().Len(resp.Schedule, 3)
	for i, day := range testOrder.Schedule() {
		suite.True(day.IsEqual(resp.Schedule[i]))
	}
	suite.True(testOrder.StartDate().IsEqual(resp.StartDate))
	suite.True(testOrder.EndDate().IsEqual(resp.EndDate))

	suite.Require().NotNil(resp.Driver)
	suite.Equal(suite.driverID, resp.Driver.ID)
	suite.Equal("Marcus Webb", resp.Driver.Name)
	suite.Require().NotNil(resp.DeliverySequence)
	suite.Equal(2, *resp.DeliverySequence)

	suite.Equal("12 Harbor Rd", resp.Address.Street)
	suite.Equal("pi_proj_1", resp.PaymentIntentID)
	suite.Equal(int64(4990), resp.AmountPaid)
	suite.Equal("usd", resp.Currency)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_UnassignedOrderHasNoDriverView() {
	ctx := context.Background()

	testOrder := suite.createOrder("pi_proj_2", "ORD-20260901-000002")
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	resp, err := suite.orderHandler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Nil(resp.Driver)
	suite.Nil(resp.DeliverySequence)
	suite.Equal(order.PendingAssignment, resp.DeliveryStatus)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_UnknownOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	resp, err := suite.orderHandler.Handle(context.Background(), query)

	suite.Nil(resp)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetDriverOrders_OrdersByRouteSequence() {
	ctx := context.Background()

	second := suite.createOrder("pi_route_2", "ORD-20260901-000012")
	suite.Require().NoError(second.AssignDriver(suite.driverID))
	seq2 := 2
	second.SetDeliverySequence(&seq2)
	suite.Require().NoError(suite.orderRepo.Add(ctx, second))

	first := suite.createOrder("pi_route_1", "ORD-20260901-000011")
	suite.Require().NoError(first.AssignDriver(suite.driverID))
	seq1 := 1
	first.SetDeliverySequence(&seq1)
	suite.Require().NoError(suite.orderRepo.Add(ctx, first))

	// No sequence assigned yet: sorts after sequenced stops.
	unsequenced := suite.createOrder("pi_route_3", "ORD-20260901-000013")
	suite.Require().NoError(unsequenced.AssignDriver(suite.driverID))
	suite.Require().NoError(suite.orderRepo.Add(ctx, unsequenced))

	// Another driver's order must not appear on this route.
	otherDriver := suite.createOrder("pi_route_4", "ORD-20260901-000014")
	suite.Require().NoError(otherDriver.AssignDriver(kernel.NewUUID()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, otherDriver))

	query, err := queries.NewGetDriverOrdersQuery(suite.driverID)
	suite.Require().NoError(err)

	route, err := suite.driverOrdersHandler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(route, 3)
	suite.Equal(first.ID(), route[0].ID)
	suite.Equal(second.ID(), route[1].ID)
	suite.Equal(unsequenced.ID(), route[2].ID)
	suite.Equal("Dana Field", route[0].CustomerName)
	suite.Equal(order.Assigned, route[0].DeliveryStatus)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetDriverOrders_UnknownDriver_ReturnsEmptySlice() {
	query, err := queries.NewGetDriverOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	route, err := suite.driverOrdersHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(route)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAssignableOrders_ListsUnassignedActiveOrders() {
	ctx := context.Background()

	second := suite.createOrder("pi_pool_2", "ORD-20260901-000022")
	suite.Require().NoError(suite.orderRepo.Add(ctx, second))

	first := suite.createOrder("pi_pool_1", "ORD-20260901-000021")
	suite.Require().NoError(suite.orderRepo.Add(ctx, first))

	// Already on a route: not assignable.
	assigned := suite.createOrder("pi_pool_3", "ORD-20260901-000023")
	suite.Require().NoError(assigned.AssignDriver(suite.driverID))
	suite.Require().NoError(suite.orderRepo.Add(ctx, assigned))

	// Cancelled before assignment: not assignable either.
	cancelled := suite.createOrder("pi_pool_4", "ORD-20260901-000024")
	changed, err := cancelled.OverrideStatus(order.StatusCancelled)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(suite.orderRepo.Add(ctx, cancelled))

	pool, err := suite.assignableOrdersHandler.Handle(ctx, queries.NewGetAssignableOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(pool, 2)
	suite.Equal(first.ID(), pool[0].ID)
	suite.Equal(second.ID(), pool[1].ID)
	suite.Equal("ORD-20260901-000021", pool[0].OrderNumber)
	suite.Equal("Dana Field", pool[0].CustomerName)
	suite.Equal("12 Harbor Rd", pool[0].Address.Street)
	suite.True(first.StartDate().IsEqual(pool[0].StartDate))
	suite.True(first.EndDate().IsEqual(pool[0].EndDate))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAssignableOrders_EmptyPool() {
	pool, err := suite.assignableOrdersHandler.Handle(
		context.Background(), queries.NewGetAssignableOrdersQuery())

	suite.Require().NoError(err)
	suite.Empty(pool)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOperationalDates_ReturnsRangeAscending() {
	ctx := context.Background()
	adminID := kernel.NewUUID()

	days := []struct {
		date    string
		enabled bool
		notes   string
	}{
		{"2026-12-27", true, ""},
		{"2026-12-25", false, "public holiday"},
		{"2026-12-26", false, "public holiday"},
		{"2027-01-02", true, ""},
	}
	records := make([]*calendar.OperationalDate, 0, len(days))
	for _, d := range days {
		day, err := kernel.DayFromString(d.date)
		suite.Require().NoError(err)
		record, err := calendar.NewOperationalDate(day, d.enabled, d.notes, adminID)
		suite.Require().NoError(err)
		records = append(records, record)
	}
	_, err := suite.calendarRepo.UpsertMany(ctx, records)
	suite.Require().NoError(err)

	query, err := queries.NewGetOperationalDatesQuery("2026-12-25", "2026-12-31")
	suite.Require().NoError(err)

	resp, err := suite.calendarHandler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(resp, 3)
	suite.Equal("2026-12-25", resp[0].Day.String())
	suite.Equal("2026-12-26", resp[1].Day.String())
	suite.Equal("2026-12-27", resp[2].Day.String())
	suite.False(resp[0].DeliveryEnabled)
	suite.Equal("public holiday", resp[0].Notes)
	suite.Equal(adminID, resp[0].SetBy)
	suite.True(resp[2].DeliveryEnabled)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOperationalDates_EmptyRange() {
	query, err := queries.NewGetOperationalDatesQuery("2030-01-01", "2030-01-31")
	suite.Require().NoError(err)

	resp, err := suite.calendarHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(resp)
}

// createOrder builds a three-delivery order for the seeded customer. The
// order number is fixed so route ordering assertions are deterministic.
func (suite *QueryHandlersIntegrationTestSuite) createOrder(paymentIntentID, orderNumber string) *order.Order {
	start := kernel.DayOf(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	schedule := []kernel.Day{start, start.AddDays(2), start.AddDays(4)}

	payment, err := order.NewPaymentDetails(
		paymentIntentID, "cus_test", 4990, "usd",
		time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC), nil,
	)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		suite.customerID,
		kernel.NewUUID(),
		order.PackageSnapshot{Name: "Weekly Essentials", Price: 49.90, DeliveryDays: 3},
		schedule,
		order.DeliveryAddress{
			Street:     "12 Harbor Rd",
			City:       "Portsmouth",
			State:      "NH",
			PostalCode: "03801",
		},
		payment,
	)
	suite.Require().NoError(err)
	return testOrder
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
