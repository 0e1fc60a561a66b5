package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves the courier fleet, optionally narrowed to
// couriers that are online and free to take an order.
type GetCouriersQuery struct { //nolint:recvcheck //using for validation
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a courier listing query.
func NewGetCouriersQuery(availableOnly bool) (GetCouriersQuery, error) {
	return GetCouriersQuery{
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// AvailableOnly reports whether the listing is narrowed to dispatchable
// couriers.
func (q GetCouriersQuery) AvailableOnly() bool { return q.availableOnly }

// CourierResponse is one courier in the fleet listing.
type CourierResponse struct {
	ID                 kernel.UUID
	UserID             kernel.UUID
	Name               string
	VehicleType        string
	VehiclePlate       string
	IsAvailable        bool
	IsOnline           bool
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time
	TotalEarnings      string
	TotalDeliveries    int
}

// courierStatusLabel mirrors the labels shown on the dispatch board.
func courierStatusLabel(isOnline, isAvailable bool) string {
	switch {
	case !isOnline:
		return "offline"
	case !isAvailable:
		return "busy"
	default:
		return "available"
	}
}

// Status returns the courier's dispatch-board label.
func (r CourierResponse) Status() string {
	return courierStatusLabel(r.IsOnline, r.IsAvailable)
}
