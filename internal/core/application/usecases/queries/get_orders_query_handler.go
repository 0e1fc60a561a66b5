package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders with raw SQL, applying the actor's
// visibility scope in the WHERE clause.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for actor-scoped order
// listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. Results are newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
		WHERE 1=1
	`
	args := make([]any, 0, 3)

	switch query.ActorRole() {
	case kernel.RoleCustomer:
		sql += " AND o.customer_id = ?"
		args = append(args, query.ActorUserID().Bytes())
	case kernel.RoleDelivery:
		sql += " AND o.courier_id = (SELECT id FROM couriers WHERE user_id = ?)"
		args = append(args, query.ActorUserID().Bytes())
	case kernel.RoleRestaurantOwner:
		if query.RestaurantID() != nil {
			sql += " AND o.restaurant_id = ?"
			args = append(args, query.RestaurantID().Bytes())
		}
	case kernel.RoleAdmin:
		// operators see everything
	}

	if query.Status() != nil {
		sql += " AND o.status = ?"
		args = append(args, query.Status().String())
	}

	sql += " ORDER BY o.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
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
