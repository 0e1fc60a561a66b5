package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// CreateOrderCommandHandler places a new order: prices the cart, redeems
// the coupon, allocates the daily order number, and persists everything in
// one transaction. Counter bumps and the customer notification run after
// commit and never fail the request.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricing    services.PricingService
	stats      ports.OrderStats
	publisher  ports.NotificationPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// stats and publisher may be nil; the matching side effects are skipped.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricing services.PricingService,
	stats ports.OrderStats,
	publisher ports.NotificationPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		stats:      stats,
		publisher:  publisher,
	}
}

// Handle processes the order placement command and returns the created
// order.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	discount := kernel.ZeroMoney()
	couponCode := strings.ToUpper(cmd.CouponCode())
	if couponCode != "" {
		var err error
		if discount, err = h.redeemCoupon(ctx, uow, cmd, couponCode, now); err != nil {
			return nil, err
		}
	}

	deliveryFee := services.DefaultDeliveryFee()
	if cmd.DeliveryFee() != nil {
		deliveryFee = *cmd.DeliveryFee()
	}

	charges, err := h.pricing.Calculate(cmd.Items(), deliveryFee, discount, cmd.Tip())
	if err != nil {
		return nil, err
	}

	seq, err := orderRepo.NextDailySequence(ctx, now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		order.FormatNumber(now, seq),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Items(),
		cmd.DeliveryAddress(),
		charges,
		couponCode,
		cmd.PaymentMethod(),
		cmd.CustomerNotes(),
		cmd.EstimatedDeliveryTime(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.bumpCounters(ctx, newOrder)
	notifyCustomer(ctx, h.publisher, newOrder)
	return newOrder, nil
}

// redeemCoupon checks eligibility, computes the discount, and bumps the
// usage counter inside the running transaction.
func (h CreateOrderCommandHandler) redeemCoupon(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
	couponCode string,
	now time.Time,
) (kernel.Money, error) {
	couponRepo := uow.CouponRepository()

	activeCoupon, err := couponRepo.GetActiveByCode(ctx, couponCode)
	if err != nil {
		return kernel.Money{}, err
	}

	priorOrders, err := uow.OrderRepository().CountByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.Money{}, err
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range cmd.Items() {
		subtotal = subtotal.Add(item.Subtotal())
	}

	discount, err := activeCoupon.DiscountFor(subtotal, cmd.RestaurantID(), int(priorOrders), now)
	if err != nil {
		return kernel.Money{}, err
	}

	if err = couponRepo.IncrementUsage(ctx, couponCode); err != nil {
		return kernel.Money{}, err
	}

	return discount, nil
}

// bumpCounters updates the denormalized restaurant and dish counters.
// Failures are logged and swallowed; the order already committed.
func (h CreateOrderCommandHandler) bumpCounters(ctx context.Context, o *order.Order) {
	if h.stats == nil {
		return
	}

	if err := h.stats.BumpRestaurantOrders(ctx, o.RestaurantID()); err != nil {
		slog.Warn("restaurant order counter bump failed",
			"restaurant", o.RestaurantID().String(), "error", err)
	}
	for _, item := range o.Items() {
		if err := h.stats.BumpDishOrders(ctx, item.DishID(), item.Quantity()); err != nil {
			slog.Warn("dish order counter bump failed",
				"dish", item.DishID().String(), "error", err)
		}
	}
}
