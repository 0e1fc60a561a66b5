package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the live tracking view of an order: its status
// timeline and, once a courier is assigned, the courier's vehicle and last
// reported location. Access is restricted to the ordering customer, the
// assigned courier, and staff.
type TrackOrderQuery struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorUserID kernel.UUID
	actorRole   kernel.Role

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates an order tracking query.
func NewTrackOrderQuery(
	orderID kernel.UUID,
	actorUserID kernel.UUID,
	actorRole kernel.Role,
) (TrackOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorUserID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		orderID:     orderID,
		actorUserID: actorUserID,
		actorRole:   actorRole,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the tracked order's identifier.
func (q TrackOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ActorUserID returns the requesting user's identifier.
func (q TrackOrderQuery) ActorUserID() kernel.UUID { return q.actorUserID }

// ActorRole returns the requesting user's role.
func (q TrackOrderQuery) ActorRole() kernel.Role { return q.actorRole }

// TrackedCourierResponse is the courier snapshot shown on the tracking
// view.
type TrackedCourierResponse struct {
	Name               string
	VehicleType        string
	VehiclePlate       string
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time
}

// TrackOrderResponse is the tracking view of one order.
type TrackOrderResponse struct {
	ID                    kernel.UUID
	Number                string
	Status                string
	EstimatedDeliveryTime string
	CreatedAt             time.Time
	ConfirmedAt           *time.Time
	PreparingAt           *time.Time
	ReadyAt               *time.Time
	OnDeliveryAt          *time.Time
	DeliveredAt           *time.Time
	ReceivedAt            *time.Time
	Courier               *TrackedCourierResponse
}
