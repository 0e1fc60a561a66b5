package courierrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for
// CourierRepository using PostgreSQL containers.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Maria")
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)

	suite.True(testCourier.IsEqual(restored))
	suite.Equal("Maria", restored.Name())
	suite.Equal(courier.VehicleMotorcycle, restored.VehicleType())
	suite.True(restored.IsAvailable())
	suite.False(restored.IsOnline())
	suite.Nil(restored.Location())
	suite.Equal(0, restored.TotalDeliveries())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetByUserID() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Jorge")
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	restored, err := suite.repository.GetByUserID(ctx, testCourier.UserID())
	suite.Require().NoError(err)
	suite.True(testCourier.IsEqual(restored))

	_, err = suite.repository.GetByUserID(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsLocationAndEarnings() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Luis")
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	now := time.Now().UTC().Truncate(time.Microsecond)
	location, err := kernel.NewLocation(19.4326, -99.1332)
	suite.Require().NoError(err)
	suite.Require().NoError(testCourier.MoveTo(location, now))
	suite.Require().NoError(testCourier.AddEarnings(kernel.NewMoneyFromFloat(35.00), now))
	testCourier.SetOnline(true, now)

	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	restored, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(restored.Location())
	suite.True(location.IsEqual(*restored.Location()))
	suite.True(restored.IsOnline())
	suite.Equal("35.00", restored.TotalEarnings().String())
	suite.Equal(1, restored.TotalDeliveries())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestReserve_OnlyWhenOnlineAndAvailable() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Ana")
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	// offline couriers cannot be reserved
	reserved, err := suite.repository.Reserve(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(reserved)

	testCourier.SetOnline(true, time.Now().UTC())
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	reserved, err = suite.repository.Reserve(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.True(reserved)

	// already reserved
	reserved, err = suite.repository.Reserve(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.False(reserved)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestReserve_Concurrent_SingleWinner() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Pedro")
	testCourier.SetOnline(true, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	const callers = 10
	wins := make(chan bool, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reserved, err := suite.repository.Reserve(ctx, testCourier.ID())
			suite.NoError(err)
			wins <- reserved
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	suite.Equal(1, winners)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestRelease_MakesCourierAvailableAgain() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCourier := suite.createTestCourier("Sofia")
	testCourier.SetOnline(true, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	reserved, err := suite.repository.Reserve(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.True(reserved)

	suite.Require().NoError(suite.repository.Release(ctx, testCourier.ID()))

	reserved, err = suite.repository.Reserve(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.True(reserved)
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(name string) *courier.Courier {
	now := time.Now().UTC().Truncate(time.Microsecond)
	testCourier, err := courier.NewCourier(
		kernel.NewUUID(),
		kernel.NewUUID(),
		name,
		courier.VehicleMotorcycle,
		"ABC-123",
		now,
	)
	suite.Require().NoError(err)
	return testCourier
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
