package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type createOrderItemRequest struct {
	DishID         string   `json:"dish_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Customizations []string `json:"customizations"`
}

type createOrderAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

type createOrderRequest struct {
	RestaurantID          string                    `json:"restaurant_id"`
	Items                 []createOrderItemRequest  `json:"items"`
	DeliveryAddress       createOrderAddressRequest `json:"delivery_address"`
	DeliveryFee           *float64                  `json:"delivery_fee"`
	Tip                   float64                   `json:"tip"`
	CouponCode            string                    `json:"coupon_code"`
	PaymentMethod         string                    `json:"payment_method"`
	CustomerNotes         string                    `json:"customer_notes"`
	EstimatedDeliveryTime string                    `json:"estimated_delivery_time"`
}

// CreateOrder places a new order for the authenticated customer.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid restaurant_id"))
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		dishID, err := kernel.UUIDFromString(line.DishID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid dish_id"))
		}

		unitPrice := kernel.NewMoneyFromFloat(line.UnitPrice)
		item, err := order.NewItem(
			dishID,
			line.Name,
			line.Quantity,
			unitPrice,
			unitPrice.MulInt(line.Quantity),
			line.Customizations,
		)
		if err != nil {
			return writeError(c, err)
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(
		req.DeliveryAddress.Street,
		req.DeliveryAddress.City,
		req.DeliveryAddress.State,
		req.DeliveryAddress.PostalCode,
		req.DeliveryAddress.Notes,
	)
	if err != nil {
		return writeError(c, err)
	}

	var deliveryFee *kernel.Money
	if req.DeliveryFee != nil {
		fee := kernel.NewMoneyFromFloat(*req.DeliveryFee)
		deliveryFee = &fee
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		actorFrom(c).UserID,
		restaurantID,
		items,
		address,
		deliveryFee,
		kernel.NewMoneyFromFloat(req.Tip),
		req.CouponCode,
		req.PaymentMethod,
		req.CustomerNotes,
		req.EstimatedDeliveryTime,
	)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse(created))
}

// GetOrders lists orders visible to the authenticated actor. Accepts
// optional status and restaurant_id query parameters.
func (s *Server) GetOrders(c echo.Context) error {
	actor := actorFrom(c)

	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			return writeError(c, err)
		}
		status = &parsed
	}

	var restaurantID *kernel.UUID
	if raw := c.QueryParam("restaurant_id"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid restaurant_id"))
		}
		restaurantID = &parsed
	}

	query, err := queries.NewGetOrdersQuery(actor.UserID, actor.Role, status, restaurantID)
	if err != nil {
		return writeError(c, err)
	}

	summaries, err := s.getOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]OrderSummaryJSON, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, orderSummaryJSON(summary))
	}
	return c.JSON(http.StatusOK, response)
}

// GetAvailableOrders lists ready, unassigned orders couriers can pick up.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	summaries, err := s.getAvailableOrdersHandler.Handle(
		c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]OrderSummaryJSON, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, orderSummaryJSON(summary))
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder returns the full detail view of one order.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	actor := actorFrom(c)
	query, err := queries.NewGetOrderQuery(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(c, err)
	}

	details, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderDetailsJSON(details))
}

// TrackOrder returns the tracking view of one order: phase timestamps plus
// the assigned courier's position.
func (s *Server) TrackOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	actor := actorFrom(c)
	query, err := queries.NewTrackOrderQuery(orderID, actor.UserID, actor.Role)
	if err != nil {
		return writeError(c, err)
	}

	tracked, err := s.trackOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, trackOrderJSON(tracked))
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ChangeOrderStatus advances an order along its lifecycle.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.Note, actorFrom(c).Role)
	if err != nil {
		return writeError(c, err)
	}

	changed, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(changed))
}

type assignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// AssignCourier dispatches a specific courier to an order.
func (s *Server) AssignCourier(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	var req assignCourierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid courier_id"))
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return writeError(c, err)
	}

	assigned, err := s.assignCourierHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(assigned))
}

// AcceptOrder lets the authenticated courier claim a ready order.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actorFrom(c).UserID)
	if err != nil {
		return writeError(c, err)
	}

	accepted, err := s.acceptOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(accepted))
}

// ConfirmDelivery marks the handoff done on the courier's side.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, actorFrom(c).UserID)
	if err != nil {
		return writeError(c, err)
	}

	confirmed, err := s.confirmDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(confirmed))
}

// ConfirmReceipt marks the handoff done on the customer's side.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	cmd, err := commands.NewConfirmReceiptCommand(orderID, actorFrom(c).UserID)
	if err != nil {
		return writeError(c, err)
	}

	received, err := s.confirmReceiptHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(received))
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order on behalf of the authenticated actor.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid order id"))
	}

	var req cancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	actor := actorFrom(c)
	cmd, err := commands.NewCancelOrderCommand(orderID, actor.UserID, actor.Role, req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(cancelled))
}
