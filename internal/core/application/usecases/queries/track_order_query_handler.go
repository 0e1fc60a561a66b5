package queries

import (
	"context"
	"database/sql"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler reads the tracking view of an order, joining the
// assigned courier's snapshot when one exists.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for order tracking.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking query. Customers may only track their own
// orders and couriers only orders assigned to them.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.customer_id,
			o.status,
			o.estimated_delivery_time,
			o.created_at,
			o.confirmed_at,
			o.preparing_at,
			o.ready_at,
			o.on_delivery_at,
			o.delivered_at,
			o.received_at,
			c.user_id,
			c.name,
			c.vehicle_type,
			c.vehicle_plate,
			c.latitude,
			c.longitude,
			c.last_location_update
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id            uuid.UUID
		customerID    uuid.UUID
		courierUserID uuid.NullUUID
		courierName   sql.NullString
		vehicleType   sql.NullString
		vehiclePlate  sql.NullString
		latitude      sql.NullFloat64
		longitude     sql.NullFloat64
		locatedAt     sql.NullTime
		resp          TrackOrderResponse
	)

	err := row.Scan(
		&id,
		&resp.Number,
		&customerID,
		&resp.Status,
		&resp.EstimatedDeliveryTime,
		&resp.CreatedAt,
		&resp.ConfirmedAt,
		&resp.PreparingAt,
		&resp.ReadyAt,
		&resp.OnDeliveryAt,
		&resp.DeliveredAt,
		&resp.ReceivedAt,
		&courierUserID,
		&courierName,
		&vehicleType,
		&vehiclePlate,
		&latitude,
		&longitude,
		&locatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return TrackOrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return TrackOrderResponse{}, err
	}

	if err = h.authorize(query, customerID, courierUserID); err != nil {
		return TrackOrderResponse{}, err
	}

	if courierName.Valid {
		tracked := &TrackedCourierResponse{
			Name:         courierName.String,
			VehicleType:  vehicleType.String,
			VehiclePlate: vehiclePlate.String,
		}
		if latitude.Valid && longitude.Valid {
			tracked.Latitude = &latitude.Float64
			tracked.Longitude = &longitude.Float64
		}
		if locatedAt.Valid {
			at := locatedAt.Time
			tracked.LastLocationUpdate = &at
		}
		resp.Courier = tracked
	}

	return resp, nil
}

func (h TrackOrderQueryHandler) authorize(
	query TrackOrderQuery,
	customerID uuid.UUID,
	courierUserID uuid.NullUUID,
) error {
	switch query.ActorRole() {
	case kernel.RoleCustomer:
		if query.ActorUserID().Bytes() != customerID {
			return errs.NewForbiddenError("order belongs to another customer")
		}
	case kernel.RoleDelivery:
		if !courierUserID.Valid || query.ActorUserID().Bytes() != courierUserID.UUID {
			return errs.NewForbiddenError("order is not assigned to this courier")
		}
	case kernel.RoleRestaurantOwner:
		// restaurant ownership lives outside this service, so owners
		// cannot be scoped to their own restaurant's orders here
		return errs.NewForbiddenError("restaurant owners cannot track orders")
	case kernel.RoleAdmin:
		// operators may track any order
	}
	return nil
}
