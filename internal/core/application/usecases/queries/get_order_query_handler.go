package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// orderLineDoc is the JSONB shape of one stored order line.
type orderLineDoc struct {
	DishID         string   `json:"dish_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      string   `json:"unit_price"`
	Subtotal       string   `json:"subtotal"`
	Customizations []string `json:"customizations,omitempty"`
}

// statusChangeDoc is the JSONB shape of one stored history entry.
type statusChangeDoc struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// GetOrderQueryHandler reads the full detail view of one order with raw
// SQL, unpacking the JSONB line items and status history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail read.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderDetailsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailsResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.customer_id,
			o.restaurant_id,
			o.courier_id,
			o.items,
			o.delivery_street,
			o.delivery_city,
			o.delivery_state,
			o.delivery_postal_code,
			o.delivery_notes,
			o.subtotal,
			o.delivery_fee,
			o.discount,
			o.tax,
			o.tip,
			o.total,
			o.coupon_code,
			o.status,
			o.status_history,
			o.payment_method,
			o.payment_status,
			o.customer_notes,
			o.estimated_delivery_time,
			o.cancellation_reason,
			o.cancelled_by,
			o.created_at,
			o.updated_at,
			c.user_id
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id            uuid.UUID
		customerID    uuid.UUID
		restaurantID  uuid.UUID
		courierID     uuid.NullUUID
		courierUserID uuid.NullUUID
		items         []byte
		history       []byte

		subtotal    decimal.Decimal
		deliveryFee decimal.Decimal
		discount    decimal.Decimal
		tax         decimal.Decimal
		tip         decimal.Decimal
		total       decimal.Decimal

		resp OrderDetailsResponse
	)

	err := row.Scan(
		&id,
		&resp.Number,
		&customerID,
		&restaurantID,
		&courierID,
		&items,
		&resp.DeliveryAddress.Street,
		&resp.DeliveryAddress.City,
		&resp.DeliveryAddress.State,
		&resp.DeliveryAddress.PostalCode,
		&resp.DeliveryAddress.Notes,
		&subtotal,
		&deliveryFee,
		&discount,
		&tax,
		&tip,
		&total,
		&resp.CouponCode,
		&resp.Status,
		&history,
		&resp.PaymentMethod,
		&resp.PaymentStatus,
		&resp.CustomerNotes,
		&resp.EstimatedDeliveryTime,
		&resp.CancellationReason,
		&resp.CancelledBy,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&courierUserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetailsResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return OrderDetailsResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderDetailsResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderDetailsResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return OrderDetailsResponse{}, err
	}
	if courierID.Valid {
		cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return OrderDetailsResponse{}, idErr
		}
		resp.CourierID = &cid
	}

	if err = h.authorize(query, customerID, courierUserID); err != nil {
		return OrderDetailsResponse{}, err
	}

	if resp.Items, err = decodeOrderLines(items); err != nil {
		return OrderDetailsResponse{}, err
	}
	if resp.StatusHistory, err = decodeStatusChanges(history); err != nil {
		return OrderDetailsResponse{}, err
	}

	resp.Subtotal = subtotal.StringFixed(2)
	resp.DeliveryFee = deliveryFee.StringFixed(2)
	resp.Discount = discount.StringFixed(2)
	resp.Tax = tax.StringFixed(2)
	resp.Tip = tip.StringFixed(2)
	resp.Total = total.StringFixed(2)

	return resp, nil
}

func (h GetOrderQueryHandler) authorize(
	query GetOrderQuery,
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
		return errs.NewForbiddenError("restaurant owners cannot read individual orders")
	case kernel.RoleAdmin:
		// operators may read any order
	}
	return nil
}

func decodeOrderLines(raw []byte) ([]OrderLineResponse, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []orderLineDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	lines := make([]OrderLineResponse, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, OrderLineResponse{
			DishID:         doc.DishID,
			Name:           doc.Name,
			Quantity:       doc.Quantity,
			UnitPrice:      doc.UnitPrice,
			Subtotal:       doc.Subtotal,
			Customizations: doc.Customizations,
		})
	}
	return lines, nil
}

func decodeStatusChanges(raw []byte) ([]OrderStatusChangeResponse, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []statusChangeDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	changes := make([]OrderStatusChangeResponse, 0, len(docs))
	for _, doc := range docs {
		changes = append(changes, OrderStatusChangeResponse{
			Status:    doc.Status,
			Timestamp: doc.Timestamp,
			Note:      doc.Note,
		})
	}
	return changes, nil
}
