// Package statsrepo keeps denormalized order counters for restaurants and
// dishes. The counters are upserted outside the order transaction: they are
// reporting data, and losing a bump must never fail an order.
package statsrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

// RestaurantStatsDTO is one restaurant's lifetime order counter.
type RestaurantStatsDTO struct {
	RestaurantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalOrders  int
	UpdatedAt    time.Time
}

// TableName specifies the database table name for restaurant counters.
func (RestaurantStatsDTO) TableName() string {
	return "restaurant_stats"
}

// DishStatsDTO is one dish's lifetime order counter.
type DishStatsDTO struct {
	DishID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalOrders int
	UpdatedAt   time.Time
}

// TableName specifies the database table name for dish counters.
func (DishStatsDTO) TableName() string {
	return "dish_stats"
}

// GormOrderStats implements OrderStats using GORM.
type GormOrderStats struct {
	db *gorm.DB
}

// NewGormOrderStats creates a new GORM order stats adapter.
func NewGormOrderStats(db *gorm.DB) *GormOrderStats {
	return &GormOrderStats{db: db}
}

// BumpRestaurantOrders increments the restaurant's lifetime order counter.
func (s *GormOrderStats) BumpRestaurantOrders(
	ctx context.Context,
	restaurantID kernel.UUID,
) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Exec(`
		INSERT INTO restaurant_stats (restaurant_id, total_orders, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET total_orders = restaurant_stats.total_orders + 1,
		    updated_at = EXCLUDED.updated_at
	`, restaurantID.Bytes(), time.Now().UTC()).Error
}

// BumpDishOrders increments a dish's order counter by the quantity sold.
func (s *GormOrderStats) BumpDishOrders(
	ctx context.Context,
	dishID kernel.UUID,
	quantity int,
) error {
	if err := dishID.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Exec(`
		INSERT INTO dish_stats (dish_id, total_orders, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (dish_id) DO UPDATE
		SET total_orders = dish_stats.total_orders + EXCLUDED.total_orders,
		    updated_at = EXCLUDED.updated_at
	`, dishID.Bytes(), quantity, time.Now().UTC()).Error
}
