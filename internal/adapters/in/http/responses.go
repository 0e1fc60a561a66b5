package http

import (
	"errors"
	"net/http"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func errorBody(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// writeError maps an application error to its transport status code by the
// sentinel it unwraps to. Unknown errors become 500 without leaking the
// message.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody(err.Error()))
	case errors.Is(err, errs.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody(err.Error()))
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
	}
}

// OrderItemResponse is one order line in an order reply.
type OrderItemResponse struct {
	DishID         string   `json:"dish_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Subtotal       float64  `json:"subtotal"`
	Customizations []string `json:"customizations,omitempty"`
}

// AddressResponse is the delivery address snapshot in an order reply.
type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// StatusChangeResponse is one status history entry in an order reply.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// OrderResponse is the full representation of an order.
type OrderResponse struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	CustomerID   string  `json:"customer_id"`
	RestaurantID string  `json:"restaurant_id"`
	CourierID    *string `json:"courier_id,omitempty"`

	Items           []OrderItemResponse `json:"items"`
	DeliveryAddress AddressResponse     `json:"delivery_address"`

	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	Tip         float64 `json:"tip"`
	Total       float64 `json:"total"`
	CouponCode  string  `json:"coupon_code,omitempty"`

	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"status_history"`
	PaymentMethod string                 `json:"payment_method"`
	PaymentStatus string                 `json:"payment_status"`

	CustomerNotes         string `json:"customer_notes,omitempty"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledBy        string `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func orderResponse(o *order.Order) OrderResponse {
	var courierID *string
	if id := o.CourierID(); id != nil {
		s := id.String()
		courierID = &s
	}

	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			DishID:         item.DishID().String(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPrice:      item.UnitPrice().Float64(),
			Subtotal:       item.Subtotal().Float64(),
			Customizations: item.Customizations(),
		})
	}

	history := make([]StatusChangeResponse, 0, len(o.History()))
	for _, change := range o.History() {
		history = append(history, StatusChangeResponse{
			Status:    string(change.Status),
			Timestamp: change.Timestamp,
			Note:      change.Note,
		})
	}

	address := o.DeliveryAddress()
	charges := o.Charges()

	return OrderResponse{
		ID:           o.ID().String(),
		Number:       o.Number(),
		CustomerID:   o.CustomerID().String(),
		RestaurantID: o.RestaurantID().String(),
		CourierID:    courierID,
		Items:        items,
		DeliveryAddress: AddressResponse{
			Street:     address.Street(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Notes:      address.Notes(),
		},
		Subtotal:              charges.Subtotal.Float64(),
		DeliveryFee:           charges.DeliveryFee.Float64(),
		Discount:              charges.Discount.Float64(),
		Tax:                   charges.Tax.Float64(),
		Tip:                   charges.Tip.Float64(),
		Total:                 charges.Total.Float64(),
		CouponCode:            o.CouponCode(),
		Status:                string(o.Status()),
		StatusHistory:         history,
		PaymentMethod:         o.PaymentMethod(),
		PaymentStatus:         string(o.PaymentStatus()),
		CustomerNotes:         o.CustomerNotes(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		CancellationReason:    o.CancellationReason(),
		CancelledBy:           string(o.CancelledBy()),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
}

// OrderDetailsJSON is the read-side detail view of an order. Monetary
// amounts are fixed-point strings as read from the numeric columns.
type OrderDetailsJSON struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	CustomerID   string  `json:"customer_id"`
	RestaurantID string  `json:"restaurant_id"`
	CourierID    *string `json:"courier_id,omitempty"`

	Items           []OrderLineJSON `json:"items"`
	DeliveryAddress AddressResponse `json:"delivery_address"`

	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Discount    string `json:"discount"`
	Tax         string `json:"tax"`
	Tip         string `json:"tip"`
	Total       string `json:"total"`
	CouponCode  string `json:"coupon_code,omitempty"`

	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"status_history"`
	PaymentMethod string                 `json:"payment_method"`
	PaymentStatus string                 `json:"payment_status"`

	CustomerNotes         string `json:"customer_notes,omitempty"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledBy        string `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderLineJSON is one order line in the detail view.
type OrderLineJSON struct {
	DishID         string   `json:"dish_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      string   `json:"unit_price"`
	Subtotal       string   `json:"subtotal"`
	Customizations []string `json:"customizations,omitempty"`
}

func orderDetailsJSON(details queries.OrderDetailsResponse) OrderDetailsJSON {
	var courierID *string
	if details.CourierID != nil {
		s := details.CourierID.String()
		courierID = &s
	}

	items := make([]OrderLineJSON, 0, len(details.Items))
	for _, line := range details.Items {
		items = append(items, OrderLineJSON{
			DishID:         line.DishID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			Subtotal:       line.Subtotal,
			Customizations: line.Customizations,
		})
	}

	history := make([]StatusChangeResponse, 0, len(details.StatusHistory))
	for _, change := range details.StatusHistory {
		history = append(history, StatusChangeResponse{
			Status:    change.Status,
			Timestamp: change.Timestamp,
			Note:      change.Note,
		})
	}

	return OrderDetailsJSON{
		ID:           details.ID.String(),
		Number:       details.Number,
		CustomerID:   details.CustomerID.String(),
		RestaurantID: details.RestaurantID.String(),
		CourierID:    courierID,
		Items:        items,
		DeliveryAddress: AddressResponse{
			Street:     details.DeliveryAddress.Street,
			City:       details.DeliveryAddress.City,
			State:      details.DeliveryAddress.State,
			PostalCode: details.DeliveryAddress.PostalCode,
			Notes:      details.DeliveryAddress.Notes,
		},
		Subtotal:              details.Subtotal,
		DeliveryFee:           details.DeliveryFee,
		Discount:              details.Discount,
		Tax:                   details.Tax,
		Tip:                   details.Tip,
		Total:                 details.Total,
		CouponCode:            details.CouponCode,
		Status:                details.Status,
		StatusHistory:         history,
		PaymentMethod:         details.PaymentMethod,
		PaymentStatus:         details.PaymentStatus,
		CustomerNotes:         details.CustomerNotes,
		EstimatedDeliveryTime: details.EstimatedDeliveryTime,
		CancellationReason:    details.CancellationReason,
		CancelledBy:           details.CancelledBy,
		CreatedAt:             details.CreatedAt,
		UpdatedAt:             details.UpdatedAt,
	}
}

// OrderSummaryJSON is one row of an order listing.
type OrderSummaryJSON struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	CustomerID    string    `json:"customer_id"`
	RestaurantID  string    `json:"restaurant_id"`
	CourierID     *string   `json:"courier_id,omitempty"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func orderSummaryJSON(summary queries.OrderSummaryResponse) OrderSummaryJSON {
	var courierID *string
	if summary.CourierID != nil {
		s := summary.CourierID.String()
		courierID = &s
	}

	return OrderSummaryJSON{
		ID:            summary.ID.String(),
		Number:        summary.Number,
		CustomerID:    summary.CustomerID.String(),
		RestaurantID:  summary.RestaurantID.String(),
		CourierID:     courierID,
		Status:        summary.Status,
		Total:         summary.Total,
		PaymentStatus: summary.PaymentStatus,
		CreatedAt:     summary.CreatedAt,
	}
}

// CourierJSON is the representation of a courier profile.
type CourierJSON struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	VehicleType        string     `json:"vehicle_type"`
	VehiclePlate       string     `json:"vehicle_plate,omitempty"`
	Status             string     `json:"status"`
	IsAvailable        bool       `json:"is_available"`
	IsOnline           bool       `json:"is_online"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
	TotalEarnings      string     `json:"total_earnings"`
	TotalDeliveries    int        `json:"total_deliveries"`
}

func courierJSON(c *courier.Courier) CourierJSON {
	var latitude, longitude *float64
	if loc := c.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		latitude, longitude = &lat, &lng
	}

	resp := CourierJSON{
		ID:                 c.ID().String(),
		UserID:             c.UserID().String(),
		Name:               c.Name(),
		VehicleType:        c.VehicleType().String(),
		VehiclePlate:       c.VehiclePlate(),
		IsAvailable:        c.IsAvailable(),
		IsOnline:           c.IsOnline(),
		Latitude:           latitude,
		Longitude:          longitude,
		LastLocationUpdate: c.LastLocationUpdate(),
		TotalEarnings:      c.TotalEarnings().String(),
		TotalDeliveries:    c.TotalDeliveries(),
	}
	resp.Status = courierStatusLabel(resp.IsOnline, resp.IsAvailable)
	return resp
}

func courierListJSON(listed queries.CourierResponse) CourierJSON {
	return CourierJSON{
		ID:                 listed.ID.String(),
		UserID:             listed.UserID.String(),
		Name:               listed.Name,
		VehicleType:        listed.VehicleType,
		VehiclePlate:       listed.VehiclePlate,
		Status:             listed.Status(),
		IsAvailable:        listed.IsAvailable,
		IsOnline:           listed.IsOnline,
		Latitude:           listed.Latitude,
		Longitude:          listed.Longitude,
		LastLocationUpdate: listed.LastLocationUpdate,
		TotalEarnings:      listed.TotalEarnings,
		TotalDeliveries:    listed.TotalDeliveries,
	}
}

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

// TrackedCourierJSON is the courier snapshot on the tracking view.
type TrackedCourierJSON struct {
	Name               string     `json:"name"`
	VehicleType        string     `json:"vehicle_type"`
	VehiclePlate       string     `json:"vehicle_plate,omitempty"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
}

// TrackOrderJSON is the tracking view of one order.
type TrackOrderJSON struct {
	ID                    string              `json:"id"`
	Number                string              `json:"number"`
	Status                string              `json:"status"`
	EstimatedDeliveryTime string              `json:"estimated_delivery_time"`
	CreatedAt             time.Time           `json:"created_at"`
	ConfirmedAt           *time.Time          `json:"confirmed_at,omitempty"`
	PreparingAt           *time.Time          `json:"preparing_at,omitempty"`
	ReadyAt               *time.Time          `json:"ready_at,omitempty"`
	OnDeliveryAt          *time.Time          `json:"on_delivery_at,omitempty"`
	DeliveredAt           *time.Time          `json:"delivered_at,omitempty"`
	ReceivedAt            *time.Time          `json:"received_at,omitempty"`
	Courier               *TrackedCourierJSON `json:"courier,omitempty"`
}

func trackOrderJSON(tracked queries.TrackOrderResponse) TrackOrderJSON {
	resp := TrackOrderJSON{
		ID:                    tracked.ID.String(),
		Number:                tracked.Number,
		Status:                tracked.Status,
		EstimatedDeliveryTime: tracked.EstimatedDeliveryTime,
		CreatedAt:             tracked.CreatedAt,
		ConfirmedAt:           tracked.ConfirmedAt,
		PreparingAt:           tracked.PreparingAt,
		ReadyAt:               tracked.ReadyAt,
		OnDeliveryAt:          tracked.OnDeliveryAt,
		DeliveredAt:           tracked.DeliveredAt,
		ReceivedAt:            tracked.ReceivedAt,
	}
	if tracked.Courier != nil {
		resp.Courier = &TrackedCourierJSON{
			Name:               tracked.Courier.Name,
			VehicleType:        tracked.Courier.VehicleType,
			VehiclePlate:       tracked.Courier.VehiclePlate,
			Latitude:           tracked.Courier.Latitude,
			Longitude:          tracked.Courier.Longitude,
			LastLocationUpdate: tracked.Courier.LastLocationUpdate,
		}
	}
	return resp
}
