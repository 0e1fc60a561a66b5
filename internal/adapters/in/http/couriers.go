package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetCouriers lists the courier fleet. Pass available=true to see only
// couriers ready to take an order.
func (s *Server) GetCouriers(c echo.Context) error {
	query, err := queries.NewGetCouriersQuery(c.QueryParam("available") == "true")
	if err != nil {
		return writeError(c, err)
	}

	couriers, err := s.getCouriersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]CourierJSON, 0, len(couriers))
	for _, listed := range couriers {
		response = append(response, courierListJSON(listed))
	}
	return c.JSON(http.StatusOK, response)
}

type courierStatusRequest struct {
	IsOnline    *bool `json:"is_online"`
	IsAvailable *bool `json:"is_available"`
}

// UpdateCourierStatus flips the authenticated courier's online and
// availability flags. Absent fields are left unchanged.
func (s *Server) UpdateCourierStatus(c echo.Context) error {
	var req courierStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	cmd, err := commands.NewUpdateCourierStatusCommand(
		actorFrom(c).UserID, req.IsOnline, req.IsAvailable)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.courierStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, courierJSON(updated))
}

type courierLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateCourierLocation records the authenticated courier's position.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	var req courierLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	location, err := kernel.NewLocation(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(actorFrom(c).UserID, location)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.courierLocationHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, courierJSON(updated))
}
