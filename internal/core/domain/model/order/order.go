package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// initialHistoryNote annotates the first status history entry.
	initialHistoryNote = "order received"
	// defaultPaymentMethod is used when the customer does not pick one.
	defaultPaymentMethod = "cash"
	// DefaultEstimatedDeliveryTime is the delivery window quoted when the
	// client does not supply one.
	DefaultEstimatedDeliveryTime = "30-45 min"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when creating an order with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrCourierAlreadyAssigned is returned when binding a courier to an
	// order that already has one. The courier binding is write-once.
	ErrCourierAlreadyAssigned = errs.NewConflictError("order is already assigned to a courier")
)

// PaymentStatus tracks whether the order has been settled. Payment is marked
// paid only at the terminal delivered transition, never earlier.
type PaymentStatus string

const (
	// PaymentPending means the order has not been settled yet.
	PaymentPending PaymentStatus = "pending"
	// PaymentPaid means the order was settled at delivery.
	PaymentPaid PaymentStatus = "paid"
)

// CancelledBy identifies which side of the marketplace cancelled an order.
type CancelledBy string

const (
	// CancelledByCustomer means the ordering customer cancelled.
	CancelledByCustomer CancelledBy = "customer"
	// CancelledByDelivery means the assigned courier cancelled.
	CancelledByDelivery CancelledBy = "delivery"
	// CancelledByAdmin means a platform operator cancelled.
	CancelledByAdmin CancelledBy = "admin"
)

// ParseCancelledBy converts a wire string into a CancelledBy value.
func ParseCancelledBy(s string) (CancelledBy, error) {
	switch cb := CancelledBy(s); cb {
	case CancelledByCustomer, CancelledByDelivery, CancelledByAdmin:
		return cb, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("cancelledBy",
			fmt.Errorf("%q is not a recognized canceller", s))
	}
}

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	Note      string
}

// Charges is the financial snapshot of an order, computed once at creation
// and never recomputed. All amounts are non-negative and two-decimal.
type Charges struct {
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Discount    kernel.Money
	Tax         kernel.Money
	Tip         kernel.Money
	Total       kernel.Money
}

// Validate rejects charges with any negative component.
func (c Charges) Validate() error {
	for name, amount := range map[string]kernel.Money{
		"subtotal":    c.Subtotal,
		"deliveryFee": c.DeliveryFee,
		"discount":    c.Discount,
		"tax":         c.Tax,
		"tip":         c.Tip,
		"total":       c.Total,
	} {
		if amount.IsNegative() {
			return errs.NewValueIsInvalidError(name)
		}
	}
	return nil
}

// FormatNumber renders the order number for the given day and daily
// sequence: ORD-YYYYMMDD-NNNN. Sequence allocation itself is the
// repository's atomic per-day counter.
func FormatNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq)
}

// Order is the aggregate root of the order lifecycle. It carries the
// customer's purchase (items and a frozen delivery-address snapshot), the
// financial snapshot, and the delivery state machine.
//
// Invariants maintained by this aggregate:
//   - the financial snapshot is computed at creation and never changes
//   - statusHistory is append-only; entries are never mutated or removed
//   - the courier binding transitions from unset to exactly one value
//   - each phase timestamp is set at most once
//   - paymentStatus becomes paid only when the order reaches delivered
//
// Every mutation goes through a method that enforces the state machine;
// fields are private so callers cannot bypass the rules.
type Order struct {
	id           kernel.UUID
	number       string
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	items           []Item
	deliveryAddress Address
	charges         Charges
	couponCode      string

	status        Status
	history       []StatusChange
	paymentMethod string
	paymentStatus PaymentStatus

	customerNotes         string
	estimatedDeliveryTime string

	confirmedAt  *time.Time
	preparingAt  *time.Time
	readyAt      *time.Time
	onDeliveryAt *time.Time
	acceptedAt   *time.Time
	deliveredAt  *time.Time
	receivedAt   *time.Time
	cancelledAt  *time.Time

	cancellationReason string
	cancelledBy        CancelledBy

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in pending status with its first history entry.
// The order number and financial snapshot are produced by the caller (daily
// sequence allocation and pricing are application concerns); this
// constructor validates them and freezes them into the aggregate.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []Item,
	deliveryAddress Address,
	charges Charges,
	couponCode string,
	paymentMethod string,
	customerNotes string,
	estimatedDeliveryTime string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		deliveryAddress.Validate(),
		charges.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	if estimatedDeliveryTime == "" {
		estimatedDeliveryTime = DefaultEstimatedDeliveryTime
	}

	return &Order{
		id:              id,
		number:          number,
		customerID:      customerID,
		restaurantID:    restaurantID,
		items:           append([]Item(nil), items...),
		deliveryAddress: deliveryAddress,
		charges:         charges,
		couponCode:      couponCode,
		status:          StatusPending,
		history: []StatusChange{
			{Status: StatusPending, Timestamp: now, Note: initialHistoryNote},
		},
		paymentMethod:         paymentMethod,
		paymentStatus:         PaymentPending,
		customerNotes:         customerNotes,
		estimatedDeliveryTime: estimatedDeliveryTime,
		createdAt:             now,
		updatedAt:             now,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Snapshot carries every persisted attribute of an order. It exists for the
// persistence layer: repositories restore aggregates from it and read it
// back through the getters.
type Snapshot struct {
	ID           kernel.UUID
	Number       string
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CourierID    *kernel.UUID

	Items           []Item
	DeliveryAddress Address
	Charges         Charges
	CouponCode      string

	Status        Status
	History       []StatusChange
	PaymentMethod string
	PaymentStatus PaymentStatus

	CustomerNotes         string
	EstimatedDeliveryTime string

	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	OnDeliveryAt *time.Time
	AcceptedAt   *time.Time
	DeliveredAt  *time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time

	CancellationReason string
	CancelledBy        CancelledBy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage. The
// restored order behaves identically to one created through NewOrder.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.RestaurantID.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                    s.ID,
		number:                s.Number,
		customerID:            s.CustomerID,
		restaurantID:          s.RestaurantID,
		courierID:             s.CourierID,
		items:                 append([]Item(nil), s.Items...),
		deliveryAddress:       s.DeliveryAddress,
		charges:               s.Charges,
		couponCode:            s.CouponCode,
		status:                s.Status,
		history:               append([]StatusChange(nil), s.History...),
		paymentMethod:         s.PaymentMethod,
		paymentStatus:         s.PaymentStatus,
		customerNotes:         s.CustomerNotes,
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		confirmedAt:           s.ConfirmedAt,
		preparingAt:           s.PreparingAt,
		readyAt:               s.ReadyAt,
		onDeliveryAt:          s.OnDeliveryAt,
		acceptedAt:            s.AcceptedAt,
		deliveredAt:           s.DeliveredAt,
		receivedAt:            s.ReceivedAt,
		cancelledAt:           s.CancelledAt,
		cancellationReason:    s.CancellationReason,
		cancelledBy:           s.CancelledBy,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ChangeStatus performs an actor-requested status transition: validates it
// against the state machine, stamps the matching phase timestamp, and
// appends a history entry. Reaching delivered also settles the payment.
//
// Role checks happen in the application layer; the aggregate only enforces
// the state machine itself.
func (o *Order) ChangeStatus(target Status, note string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.applyPhaseTimestamp(newStatus, now)
	if newStatus == StatusDelivered {
		o.paymentStatus = PaymentPaid
	}
	o.appendHistory(newStatus, note, now)
	o.updatedAt = now
	return nil
}

// Dispatch binds a courier to the order on behalf of an operator and puts
// the order on delivery. The binding is write-once: a second courier gets
// ErrCourierAlreadyAssigned.
func (o *Order) Dispatch(courierID kernel.UUID, now time.Time) error {
	if err := o.bindCourier(courierID); err != nil {
		return err
	}

	o.status = StatusOnDelivery
	o.applyPhaseTimestamp(StatusOnDelivery, now)
	o.updatedAt = now
	return nil
}

// Accept binds the order to a courier who pulled it from the available
// queue. Identical to Dispatch except that it stamps acceptedAt, recording
// that the courier initiated the binding.
func (o *Order) Accept(courierID kernel.UUID, now time.Time) error {
	if err := o.bindCourier(courierID); err != nil {
		return err
	}

	o.status = StatusOnDelivery
	at := now
	o.acceptedAt = &at
	o.updatedAt = now
	return nil
}

// MarkDelivered is step one of the delivery confirmation handshake: the
// assigned courier declares the order handed over. The order moves to
// delivering_confirmation and waits for the customer.
func (o *Order) MarkDelivered(courierID kernel.UUID, now time.Time) error {
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return errs.NewForbiddenError("order is not assigned to this courier")
	}

	o.status = StatusDeliveringConfirmation
	if o.deliveredAt == nil {
		at := now
		o.deliveredAt = &at
	}
	o.appendHistory(StatusDeliveringConfirmation,
		"courier confirmed the delivery, awaiting customer confirmation", now)
	o.updatedAt = now
	return nil
}

// ConfirmReceipt is step two of the handshake: the ordering customer
// acknowledges the handover. The order reaches its delivered terminal state
// and the payment is settled.
func (o *Order) ConfirmReceipt(customerID kernel.UUID, now time.Time) error {
	if !o.customerID.IsEqual(customerID) {
		return errs.NewForbiddenError("order belongs to another customer")
	}
	if o.status != StatusDeliveringConfirmation {
		return errs.NewInvalidStateError("order is not awaiting receipt confirmation")
	}
	if o.courierID == nil {
		return errs.NewInvalidStateError("order has no assigned courier")
	}

	o.status = StatusDelivered
	if o.receivedAt == nil {
		at := now
		o.receivedAt = &at
	}
	o.paymentStatus = PaymentPaid
	o.appendHistory(StatusDelivered, "customer confirmed receipt of the order", now)
	o.updatedAt = now
	return nil
}

// Cancel moves the order to its cancelled terminal state, recording who
// cancelled and why. Customers may cancel only their own orders and couriers
// only orders assigned to them; operators are unrestricted. Terminal orders
// cannot be cancelled.
func (o *Order) Cancel(actorID kernel.UUID, reason string, by CancelledBy, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("%s order cannot be cancelled", string(o.status)))
	}

	switch by {
	case CancelledByCustomer:
		if !o.customerID.IsEqual(actorID) {
			return errs.NewForbiddenError("order belongs to another customer")
		}
	case CancelledByDelivery:
		if o.courierID == nil || !o.courierID.IsEqual(actorID) {
			return errs.NewForbiddenError("order is not assigned to this courier")
		}
	case CancelledByAdmin:
		// operators may cancel any order
	default:
		return errs.NewValueIsInvalidError("cancelledBy")
	}

	o.status = StatusCancelled
	o.cancellationReason = reason
	o.cancelledBy = by
	if o.cancelledAt == nil {
		at := now
		o.cancelledAt = &at
	}
	o.appendHistory(StatusCancelled, reason, now)
	o.updatedAt = now
	return nil
}

// bindCourier enforces the write-once courier binding shared by Dispatch
// and Accept. Binding the courier who already holds the order is a no-op:
// the pull-dispatch flow wins the binding with an atomic conditional update
// first and replays it on the loaded aggregate afterwards.
func (o *Order) bindCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil && !o.courierID.IsEqual(courierID) {
		return ErrCourierAlreadyAssigned
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("%s order cannot be assigned", string(o.status)))
	}

	id := courierID
	o.courierID = &id
	return nil
}

// appendHistory adds a status history entry. History is append-only:
// existing entries are never touched.
func (o *Order) appendHistory(status Status, note string, now time.Time) {
	o.history = append(o.history, StatusChange{Status: status, Timestamp: now, Note: note})
}

// applyPhaseTimestamp stamps the phase field matching the new status.
// Each phase timestamp is set at most once.
func (o *Order) applyPhaseTimestamp(status Status, now time.Time) {
	at := now
	switch status {
	case StatusConfirmed:
		if o.confirmedAt == nil {
			o.confirmedAt = &at
		}
	case StatusPreparing:
		if o.preparingAt == nil {
			o.preparingAt = &at
		}
	case StatusReady:
		if o.readyAt == nil {
			o.readyAt = &at
		}
	case StatusOnDelivery:
		if o.onDeliveryAt == nil {
			o.onDeliveryAt = &at
		}
	case StatusDelivered:
		if o.deliveredAt == nil {
			o.deliveredAt = &at
		}
	case StatusCancelled:
		if o.cancelledAt == nil {
			o.cancelledAt = &at
		}
	case StatusPending, StatusDeliveringConfirmation:
		// pending has no phase field; delivering_confirmation stamps
		// deliveredAt through MarkDelivered
	}
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-facing order number (ORD-YYYYMMDD-NNNN).
func (o *Order) Number() string { return o.number }

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// RestaurantID returns the restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// CourierID returns the assigned courier's identifier, or nil while the
// order is unassigned.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// DeliveryAddress returns the frozen delivery address snapshot.
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }

// Charges returns the immutable financial snapshot.
func (o *Order) Charges() Charges { return o.charges }

// CouponCode returns the applied coupon code, empty if none.
func (o *Order) CouponCode() string { return o.couponCode }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the append-only status history.
func (o *Order) History() []StatusChange { return append([]StatusChange(nil), o.history...) }

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// PaymentStatus returns the settlement state of the order.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// CustomerNotes returns free-form notes the customer attached.
func (o *Order) CustomerNotes() string { return o.customerNotes }

// EstimatedDeliveryTime returns the quoted delivery window.
func (o *Order) EstimatedDeliveryTime() string { return o.estimatedDeliveryTime }

// ConfirmedAt returns when the restaurant confirmed the order.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// PreparingAt returns when preparation started.
func (o *Order) PreparingAt() *time.Time { return o.preparingAt }

// ReadyAt returns when the order became ready for pickup.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// OnDeliveryAt returns when the order went out for delivery.
func (o *Order) OnDeliveryAt() *time.Time { return o.onDeliveryAt }

// AcceptedAt returns when a courier pulled the order, if self-accepted.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// DeliveredAt returns when the courier declared the handover.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// ReceivedAt returns when the customer confirmed receipt.
func (o *Order) ReceivedAt() *time.Time { return o.receivedAt }

// CancelledAt returns when the order was cancelled.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CancellationReason returns the reason recorded at cancellation.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// CancelledBy returns which side cancelled the order.
func (o *Order) CancelledBy() CancelledBy { return o.cancelledBy }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
