package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepository struct{ mock.Mock }

func (m *mockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepository) AssignCourierIfUnassigned(
	ctx context.Context,
	orderID, courierID kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, orderID, courierID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepository) CountByCustomer(ctx context.Context, customerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockCourierRepository struct{ mock.Mock }

func (m *mockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *mockCourierRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *mockCourierRepository) Reserve(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCourierRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCouponRepository struct{ mock.Mock }

func (m *mockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCouponRepository) GetActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *mockCouponRepository) IncrementUsage(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *mockCouponRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork satisfies every unit-of-work shape the handlers use.
type mockUnitOfWork struct{ mock.Mock }

func (m *mockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *mockUnitOfWork) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *mockUnitOfWork) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

type mockUoWFactory struct{ mock.Mock }

func (m *mockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type mockOrderUoWFactory struct{ mock.Mock }

func (m *mockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type mockCourierUoWFactory struct{ mock.Mock }

func (m *mockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type mockCheckoutUoWFactory struct{ mock.Mock }

func (m *mockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type mockStats struct{ mock.Mock }

func (m *mockStats) BumpRestaurantOrders(ctx context.Context, restaurantID kernel.UUID) error {
	args := m.Called(ctx, restaurantID)
	return args.Error(0)
}

func (m *mockStats) BumpDishOrders(ctx context.Context, dishID kernel.UUID, quantity int) error {
	args := m.Called(ctx, dishID, quantity)
	return args.Error(0)
}

// Shared fixtures.

func testItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), "Margherita", 2,
		kernel.NewMoneyFromFloat(119.50),
		kernel.NewMoneyFromFloat(239.00),
		nil,
	)
	require.NoError(t, err)
	return item
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	addr, err := order.NewAddress("12 Main St", "Springfield", "IL", "62704", "")
	require.NoError(t, err)
	return addr
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	subtotal := kernel.NewMoneyFromFloat(239.00)
	fee := kernel.NewMoneyFromFloat(35)
	tax := subtotal.MulFloat(0.16)

	o, err := order.NewOrder(
		kernel.NewUUID(), order.FormatNumber(now, 1),
		kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{testItem(t)}, testAddress(t),
		order.Charges{
			Subtotal:    subtotal,
			DeliveryFee: fee,
			Discount:    kernel.ZeroMoney(),
			Tax:         tax,
			Tip:         kernel.ZeroMoney(),
			Total:       subtotal.Add(fee).Add(tax),
		},
		"", "", "", "", now,
	)
	require.NoError(t, err)
	return o
}

func testCourier(t *testing.T) *courier.Courier {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c, err := courier.NewCourier(
		kernel.NewUUID(), kernel.NewUUID(),
		"Alice", courier.VehicleBicycle, "", now,
	)
	require.NoError(t, err)
	return c
}
