package cmd

import (
	"log/slog"
	"time"

	"swiftdrop/internal/adapters/out/geo"
	"swiftdrop/internal/adapters/out/postgres"
	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/jobs"

	"gorm.io/gorm"
)

const (
	defaultClaimTimeout    = 3 * time.Second
	defaultPendingOrderTTL = 30 * time.Minute
)

type CompositionRoot struct {
	gormDB          *gorm.DB
	uowFactory      postgres.GormUnitOfWorkFactory
	engine          services.PricingEngine
	claimTimeout    time.Duration
	pendingOrderTTL time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	engine, err := services.NewPricingEngine(services.DefaultTariff())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		engine:          engine,
		claimTimeout:    durationOrDefault(config.ClaimTimeout, defaultClaimTimeout),
		pendingOrderTTL: durationOrDefault(config.PendingOrderTTL, defaultPendingOrderTTL),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.claimTimeout)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCalculateQuoteQueryHandler() queries.CalculateQuoteQueryHandler {
	return queries.NewCalculateQuoteQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDistanceProvider(config Config) (ports.DistanceProvider, error) {
	return geo.NewHTTPDistanceProvider(config.RoutingServiceURL, config.RoutingServiceAPIKey)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpirePendingOrdersCommandHandler(), c.pendingOrderTTL, logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

func durationOrDefault(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
