// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The availability flags are indexed together: dispatch reserves
// couriers with a conditional update on both.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name         string
	VehicleType  string
	VehiclePlate string

	IsAvailable bool `gorm:"index:idx_couriers_dispatchable"`
	IsOnline    bool `gorm:"index:idx_couriers_dispatchable"`

	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time

	TotalEarnings   decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalDeliveries int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	var latitude, longitude *float64
	if loc := aggregate.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		latitude, longitude = &lat, &lng
	}

	return CourierDTO{
		ID:                 aggregate.ID().Bytes(),
		UserID:             aggregate.UserID().Bytes(),
		Name:               aggregate.Name(),
		VehicleType:        aggregate.VehicleType().String(),
		VehiclePlate:       aggregate.VehiclePlate(),
		IsAvailable:        aggregate.IsAvailable(),
		IsOnline:           aggregate.IsOnline(),
		Latitude:           latitude,
		Longitude:          longitude,
		LastLocationUpdate: aggregate.LastLocationUpdate(),
		TotalEarnings:      aggregate.TotalEarnings().Decimal(),
		TotalDeliveries:    aggregate.TotalDeliveries(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return courier.RestoreCourier(
		id,
		userID,
		dto.Name,
		courier.VehicleType(dto.VehicleType),
		dto.VehiclePlate,
		dto.IsAvailable,
		dto.IsOnline,
		location,
		dto.LastLocationUpdate,
		kernel.MoneyFromDecimal(dto.TotalEarnings),
		dto.TotalDeliveries,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
