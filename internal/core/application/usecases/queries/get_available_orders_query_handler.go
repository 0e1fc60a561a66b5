package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves the pull-dispatch queue:
// unassigned orders still on the kitchen side of the lifecycle, newest
// first, capped at a single page.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the available
// orders queue.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the queue query.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.customer_id,
			o.restaurant_id,
			o.courier_id,
			o.status,
			o.total,
			o.payment_status,
			o.created_at
		FROM orders o
		WHERE o.courier_id IS NULL
		  AND o.status IN ('pending', 'confirmed', 'preparing', 'ready')
		ORDER BY o.created_at DESC
		LIMIT ?
	`, availableOrdersLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		summary, scanErr := scanOrderSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
