package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/geo"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

// geocodeCacheTTL bounds how long resolved coordinates are reused. Addresses
// move rarely; a month is a safe staleness window.
const geocodeCacheTTL = 30 * 24 * time.Hour

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geocoder   ports.Geocoder
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. The geocoder is constructed eagerly
// so missing credentials fail at startup.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	var geocoder ports.Geocoder
	geocoder, err := geo.NewClient(config.GeocoderBaseURL, config.GeocoderAPIKey)
	if err != nil {
		return CompositionRoot{}, err
	}
	if config.RedisURL != "" {
		geocoder, err = geo.NewCachingGeocoder(geocoder, config.RedisURL, geocodeCacheTTL, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geocoder,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateFulfillPaymentCommandHandler() commands.FulfillPaymentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewFulfillPaymentCommandHandler(f, c.geocoder, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderCatalogUoWFactory = FuncOrderCatalogUoWFactory(func() commands.OrderCatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRemoveOrderCommandHandler() commands.RemoveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateSetOperationalDatesCommandHandler() commands.SetOperationalDatesCommandHandler {
	var f commands.CalendarUoWFactory = FuncCalendarUoWFactory(func() commands.CalendarUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetOperationalDatesCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireOrdersCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverOrdersQueryHandler() queries.GetDriverOrdersQueryHandler {
	return queries.NewGetDriverOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignableOrdersQueryHandler() queries.GetAssignableOrdersQueryHandler {
	return queries.NewGetAssignableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOperationalDatesQueryHandler() queries.GetOperationalDatesQueryHandler {
	return queries.NewGetOperationalDatesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireOrdersCommandHandler(), c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderCatalogUoWFactory func() commands.OrderCatalogUoW

func (f FuncOrderCatalogUoWFactory) Create() commands.OrderCatalogUoW {
	return f()
}

type FuncCalendarUoWFactory func() commands.CalendarUoW

func (f FuncCalendarUoWFactory) Create() commands.CalendarUoW {
	return f()
}
