package postgres_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/couponrepo"
	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics across the
// order, courier, and coupon repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderCounterDTO{},
		&courierrepo.CourierDTO{},
		&couponrepo.CouponDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_counters, couriers, coupons").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	testCourier := suite.createTestCourier()
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))

	suite.Require().NoError(uow.Commit(ctx))

	var orderCount, courierCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&courierrepo.CourierDTO{}).Count(&courierCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(1), courierCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	testCourier := suite.createTestCourier()
	suite.Require().NoError(uow.CourierRepository().Add(ctx, testCourier))

	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, courierCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&courierrepo.CourierDTO{}).Count(&courierCount).Error)
	suite.Equal(int64(0), orderCount)
	suite.Equal(int64(0), courierCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Rollback(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_DoesNotNest() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_SerializesConcurrentMutations() {
	ctx := context.Background()
	now := time.Now().UTC()

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.Begin(ctx))
	testOrder := suite.createTestOrder()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.ChangeStatus(order.StatusConfirmed, "", now))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))

	// a second locking read must wait for the first transaction
	done := make(chan struct{})
	go func() {
		defer close(done)
		second := suite.factory.Create()
		suite.Require().NoError(second.Begin(ctx))
		defer second.Rollback(ctx)
		_, lockErr := second.OrderRepository().GetForUpdate(ctx, testOrder.ID())
		suite.NoError(lockErr)
	}()

	select {
	case <-done:
		suite.Fail("second transaction acquired the lock before the first committed")
	case <-time.After(200 * time.Millisecond):
	}

	suite.Require().NoError(first.Commit(ctx))
	<-done
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)

	item, err := order.NewItem(
		kernel.NewUUID(),
		"Quesadillas",
		1,
		kernel.NewMoneyFromFloat(85.00),
		kernel.NewMoneyFromFloat(85.00),
		nil,
	)
	suite.Require().NoError(err)

	address, err := order.NewAddress("456 Oak Ave", "Guadalajara", "JAL", "44100", "")
	suite.Require().NoError(err)

	charges := order.Charges{
		Subtotal:    kernel.NewMoneyFromFloat(85.00),
		DeliveryFee: kernel.NewMoneyFromFloat(35.00),
		Discount:    kernel.ZeroMoney(),
		Tax:         kernel.NewMoneyFromFloat(13.60),
		Tip:         kernel.ZeroMoney(),
		Total:       kernel.NewMoneyFromFloat(133.60),
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		order.FormatNumber(now, 1),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{item},
		address,
		charges,
		"",
		"cash",
		"",
		"",
		now,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCourier() *courier.Courier {
	now := time.Now().UTC().Truncate(time.Microsecond)
	testCourier, err := courier.NewCourier(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Carmen",
		courier.VehicleBicycle,
		"",
		now,
	)
	suite.Require().NoError(err)
	return testCourier
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
