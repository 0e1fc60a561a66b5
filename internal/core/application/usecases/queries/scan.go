package queries

import (
	"database/sql"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// scanOrderSummary reads one order listing row. Shared by the actor-scoped
// listing and the available-orders queue.
func scanOrderSummary(rows *sql.Rows) (OrderSummaryResponse, error) {
	var (
		id           uuid.UUID
		customerID   uuid.UUID
		restaurantID uuid.UUID
		courierID    uuid.NullUUID
		total        decimal.Decimal
		summary      OrderSummaryResponse
	)

	if err := rows.Scan(
		&id,
		&summary.Number,
		&customerID,
		&restaurantID,
		&courierID,
		&summary.Status,
		&total,
		&summary.PaymentStatus,
		&summary.CreatedAt,
	); err != nil {
		return OrderSummaryResponse{}, err
	}

	var err error
	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummaryResponse{}, err
	}
	if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderSummaryResponse{}, err
	}
	if summary.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return OrderSummaryResponse{}, err
	}
	if courierID.Valid {
		cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return OrderSummaryResponse{}, idErr
		}
		summary.CourierID = &cid
	}
	summary.Total = total.StringFixed(2)

	return summary, nil
}
