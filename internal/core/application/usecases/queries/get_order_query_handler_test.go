package queries_test

import (
	"context"
	"testing"
	"time"

	"swiftdrop/internal/adapters/out/postgres/orderrepo"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	engine    services.PricingEngine
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})

	suite.engine, err = services.NewPricingEngine(services.DefaultTariff())
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ByID_MapsAllFields() {
	ctx := context.Background()

	testOrder := buildTestOrder(suite.T(), suite.engine, time.Now().UTC())
	err := suite.orderRepo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), view.ID)
	suite.Equal(testOrder.CustomerID(), view.CustomerID)
	suite.Nil(view.DriverID)
	suite.Equal(testOrder.PickupAddress(), view.PickupAddress)
	suite.Equal(testOrder.DropoffAddress(), view.DropoffAddress)
	suite.InDelta(testOrder.DistanceKm(), view.DistanceKm, 1e-9)
	suite.Equal(testOrder.Manifest(), view.Manifest)
	suite.Equal(testOrder.Window().String(), view.Window)
	suite.Equal(order.Pending.String(), view.Status)
	suite.Equal(testOrder.TrackingNumber().String(), view.TrackingNumber)
	suite.True(testOrder.Price().IsEqual(view.Price))
	suite.Nil(view.PickupTime)
	suite.Nil(view.DeliveryTime)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ByTrackingNumber_ReturnsSameOrder() {
	ctx := context.Background()

	testOrder := buildTestOrder(suite.T(), suite.engine, time.Now().UTC())
	err := suite.orderRepo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderByTrackingNumberQuery(testOrder.TrackingNumber())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), view.ID)
	suite.Equal(testOrder.TrackingNumber().String(), view.TrackingNumber)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ClaimedOrder_ShowsDriverAndStatus() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	testOrder := buildTestOrder(suite.T(), suite.engine, time.Now().UTC())
	err := testOrder.Claim(driverID, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(order.Assigned.String(), view.Status)
	suite.Require().NotNil(view.DriverID)
	suite.True(view.DriverID.IsEqual(driverID))
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownID_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownTrackingNumber_ReturnsNotFound() {
	query, err := queries.NewGetOrderByTrackingNumberQuery(kernel.NewTrackingNumber(time.Now()))
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOrderQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery or NewGetOrderByTrackingNumberQuery constructor")
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
