package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCouriersQueryHandler retrieves the courier fleet for the dispatch
// board.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for courier listings.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle executes the fleet listing.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			user_id,
			name,
			vehicle_type,
			vehicle_plate,
			is_available,
			is_online,
			latitude,
			longitude,
			last_location_update,
			total_earnings,
			total_deliveries
		FROM couriers
	`
	if query.AvailableOnly() {
		sqlQuery += ` WHERE is_online AND is_available`
	}
	sqlQuery += ` ORDER BY name`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]CourierResponse, 0)
	for rows.Next() {
		courier, scanErr := scanCourier(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		couriers = append(couriers, courier)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

func scanCourier(rows *sql.Rows) (CourierResponse, error) {
	var (
		id            uuid.UUID
		userID        uuid.UUID
		latitude      sql.NullFloat64
		longitude     sql.NullFloat64
		locatedAt     sql.NullTime
		totalEarnings decimal.Decimal
		resp          CourierResponse
	)

	err := rows.Scan(
		&id,
		&userID,
		&resp.Name,
		&resp.VehicleType,
		&resp.VehiclePlate,
		&resp.IsAvailable,
		&resp.IsOnline,
		&latitude,
		&longitude,
		&locatedAt,
		&totalEarnings,
		&resp.TotalDeliveries,
	)
	if err != nil {
		return CourierResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return CourierResponse{}, err
	}
	if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return CourierResponse{}, err
	}

	if latitude.Valid && longitude.Valid {
		resp.Latitude = &latitude.Float64
		resp.Longitude = &longitude.Float64
	}
	if locatedAt.Valid {
		at := locatedAt.Time
		resp.LastLocationUpdate = &at
	}
	resp.TotalEarnings = totalEarnings.StringFixed(2)

	return resp, nil
}
