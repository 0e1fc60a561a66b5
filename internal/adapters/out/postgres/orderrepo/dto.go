// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order domain aggregate and its
// relational representation, flattening the financial snapshot into numeric
// columns and packing order lines and status history into JSONB.
package orderrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary columns mirror the immutable financial snapshot; items and status
// history are stored as JSONB documents since they are only ever read back
// whole.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`

	Items           []byte     `gorm:"type:jsonb"`
	DeliveryAddress AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2)"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Tip         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2)"`
	CouponCode  string

	Status        string `gorm:"index"`
	StatusHistory []byte `gorm:"type:jsonb"`
	PaymentMethod string
	PaymentStatus string

	CustomerNotes         string
	EstimatedDeliveryTime string

	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	ReadyAt      *time.Time
	OnDeliveryAt *time.Time
	AcceptedAt   *time.Time
	DeliveredAt  *time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time

	CancellationReason string
	CancelledBy        string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address snapshot within the
// order table.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Notes      string
}

// OrderCounterDTO backs the per-day order number sequence. One row per
// calendar day, bumped atomically on every order creation.
type OrderCounterDTO struct {
	Day string `gorm:"type:date;primaryKey"`
	Seq int
}

// TableName specifies the database table name for the daily counters.
func (OrderCounterDTO) TableName() string {
	return "order_counters"
}

// itemDoc is the JSONB shape of one order line.
type itemDoc struct {
	DishID         string   `json:"dish_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      string   `json:"unit_price"`
	Subtotal       string   `json:"subtotal"`
	Customizations []string `json:"customizations,omitempty"`
}

// historyDoc is the JSONB shape of one status history entry.
type historyDoc struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items, err := marshalItems(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}
	history, err := marshalHistory(aggregate.History())
	if err != nil {
		return OrderDTO{}, err
	}

	address := aggregate.DeliveryAddress()
	charges := aggregate.Charges()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		CourierID:    courierID,
		Items:        items,
		DeliveryAddress: AddressDTO{
			Street:     address.Street(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Notes:      address.Notes(),
		},
		Subtotal:              charges.Subtotal.Decimal(),
		DeliveryFee:           charges.DeliveryFee.Decimal(),
		Discount:              charges.Discount.Decimal(),
		Tax:                   charges.Tax.Decimal(),
		Tip:                   charges.Tip.Decimal(),
		Total:                 charges.Total.Decimal(),
		CouponCode:            aggregate.CouponCode(),
		Status:                string(aggregate.Status()),
		StatusHistory:         history,
		PaymentMethod:         aggregate.PaymentMethod(),
		PaymentStatus:         string(aggregate.PaymentStatus()),
		CustomerNotes:         aggregate.CustomerNotes(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ConfirmedAt:           aggregate.ConfirmedAt(),
		PreparingAt:           aggregate.PreparingAt(),
		ReadyAt:               aggregate.ReadyAt(),
		OnDeliveryAt:          aggregate.OnDeliveryAt(),
		AcceptedAt:            aggregate.AcceptedAt(),
		DeliveredAt:           aggregate.DeliveredAt(),
		ReceivedAt:            aggregate.ReceivedAt(),
		CancelledAt:           aggregate.CancelledAt(),
		CancellationReason:    aggregate.CancellationReason(),
		CancelledBy:           string(aggregate.CancelledBy()),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items, err := unmarshalItems(dto.Items)
	if err != nil {
		return nil, err
	}
	history, err := unmarshalHistory(dto.StatusHistory)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.DeliveryAddress.Street,
		dto.DeliveryAddress.City,
		dto.DeliveryAddress.State,
		dto.DeliveryAddress.PostalCode,
		dto.DeliveryAddress.Notes,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          dto.Number,
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		CourierID:       courierID,
		Items:           items,
		DeliveryAddress: address,
		Charges: order.Charges{
			Subtotal:    kernel.MoneyFromDecimal(dto.Subtotal),
			DeliveryFee: kernel.MoneyFromDecimal(dto.DeliveryFee),
			Discount:    kernel.MoneyFromDecimal(dto.Discount),
			Tax:         kernel.MoneyFromDecimal(dto.Tax),
			Tip:         kernel.MoneyFromDecimal(dto.Tip),
			Total:       kernel.MoneyFromDecimal(dto.Total),
		},
		CouponCode:            dto.CouponCode,
		Status:                order.Status(dto.Status),
		History:               history,
		PaymentMethod:         dto.PaymentMethod,
		PaymentStatus:         order.PaymentStatus(dto.PaymentStatus),
		CustomerNotes:         dto.CustomerNotes,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ConfirmedAt:           dto.ConfirmedAt,
		PreparingAt:           dto.PreparingAt,
		ReadyAt:               dto.ReadyAt,
		OnDeliveryAt:          dto.OnDeliveryAt,
		AcceptedAt:            dto.AcceptedAt,
		DeliveredAt:           dto.DeliveredAt,
		ReceivedAt:            dto.ReceivedAt,
		CancelledAt:           dto.CancelledAt,
		CancellationReason:    dto.CancellationReason,
		CancelledBy:           order.CancelledBy(dto.CancelledBy),
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}

func marshalItems(items []order.Item) ([]byte, error) {
	docs := make([]itemDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, itemDoc{
			DishID:         item.DishID().String(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPrice:      item.UnitPrice().String(),
			Subtotal:       item.Subtotal().String(),
			Customizations: item.Customizations(),
		})
	}
	return json.Marshal(docs)
}

func unmarshalItems(raw []byte) ([]order.Item, error) {
	var docs []itemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(docs))
	for _, doc := range docs {
		dishID, err := kernel.UUIDFromString(doc.DishID)
		if err != nil {
			return nil, err
		}
		unitPrice, err := moneyFromString(doc.UnitPrice)
		if err != nil {
			return nil, err
		}
		subtotal, err := moneyFromString(doc.Subtotal)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(dishID, doc.Name, doc.Quantity,
			unitPrice, subtotal, doc.Customizations)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func marshalHistory(history []order.StatusChange) ([]byte, error) {
	docs := make([]historyDoc, 0, len(history))
	for _, change := range history {
		docs = append(docs, historyDoc{
			Status:    string(change.Status),
			Timestamp: change.Timestamp,
			Note:      change.Note,
		})
	}
	return json.Marshal(docs)
}

func unmarshalHistory(raw []byte) ([]order.StatusChange, error) {
	var docs []historyDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(docs))
	for _, doc := range docs {
		history = append(history, order.StatusChange{
			Status:    order.Status(doc.Status),
			Timestamp: doc.Timestamp,
			Note:      doc.Note,
		})
	}
	return history, nil
}

func moneyFromString(s string) (kernel.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.MoneyFromDecimal(d), nil
}
