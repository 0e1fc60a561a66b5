// Package http exposes the order lifecycle over a REST API. Handlers
// translate requests into commands and queries, run them, and map
// application errors to status codes; all business rules live below this
// layer.
package http

import (
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeStatusHandler      commands.ChangeOrderStatusCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	confirmReceiptHandler    commands.ConfirmReceiptCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	courierStatusHandler     commands.UpdateCourierStatusCommandHandler
	courierLocationHandler   commands.UpdateCourierLocationCommandHandler

	// Query handlers
	getOrdersHandler          queries.GetOrdersQueryHandler
	getOrderHandler           queries.GetOrderQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	trackOrderHandler         queries.TrackOrderQueryHandler
	validateCouponHandler     queries.ValidateCouponQueryHandler
	getCouriersHandler        queries.GetCouriersQueryHandler

	jwtSecret []byte
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	courierStatusHandler commands.UpdateCourierStatusCommandHandler,
	courierLocationHandler commands.UpdateCourierLocationCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	validateCouponHandler queries.ValidateCouponQueryHandler,
	getCouriersHandler queries.GetCouriersQueryHandler,
	jwtSecret []byte,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		changeStatusHandler:       changeStatusHandler,
		assignCourierHandler:      assignCourierHandler,
		acceptOrderHandler:        acceptOrderHandler,
		confirmDeliveryHandler:    confirmDeliveryHandler,
		confirmReceiptHandler:     confirmReceiptHandler,
		cancelOrderHandler:        cancelOrderHandler,
		courierStatusHandler:      courierStatusHandler,
		courierLocationHandler:    courierLocationHandler,
		getOrdersHandler:          getOrdersHandler,
		getOrderHandler:           getOrderHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		trackOrderHandler:         trackOrderHandler,
		validateCouponHandler:     validateCouponHandler,
		getCouriersHandler:        getCouriersHandler,
		jwtSecret:                 jwtSecret,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance. All routes
// require authentication; per-route role sets narrow who may call them.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	api := e.Group("/api", JWTAuth(s.jwtSecret))

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder, RequireRoles(kernel.RoleCustomer))
	orders.GET("", s.GetOrders)
	orders.GET("/:id", s.GetOrder)
	orders.GET("/:id/track", s.TrackOrder)
	orders.PUT("/:id/status", s.ChangeOrderStatus,
		RequireRoles(kernel.RoleAdmin, kernel.RoleRestaurantOwner, kernel.RoleDelivery))
	orders.PUT("/:id/assign-delivery", s.AssignCourier,
		RequireRoles(kernel.RoleAdmin, kernel.RoleRestaurantOwner))
	orders.PUT("/:id/confirm-delivery", s.ConfirmDelivery, RequireRoles(kernel.RoleDelivery))
	orders.PUT("/:id/confirm-received", s.ConfirmReceipt, RequireRoles(kernel.RoleCustomer))
	orders.PUT("/:id/cancel", s.CancelOrder,
		RequireRoles(kernel.RoleCustomer, kernel.RoleDelivery, kernel.RoleAdmin))

	delivery := api.Group("/delivery", RequireRoles(kernel.RoleDelivery))
	delivery.GET("/orders/available", s.GetAvailableOrders)
	delivery.POST("/orders/:id/accept", s.AcceptOrder)

	api.POST("/coupons/validate", s.ValidateCoupon, RequireRoles(kernel.RoleCustomer))

	api.GET("/delivery-persons", s.GetCouriers, RequireRoles(kernel.RoleAdmin))

	deliveryPersons := api.Group("/delivery-persons", RequireRoles(kernel.RoleDelivery))
	deliveryPersons.PUT("/status", s.UpdateCourierStatus)
	deliveryPersons.PUT("/location", s.UpdateCourierLocation)
}
