package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type validateCouponRequest struct {
	Code         string  `json:"code"`
	RestaurantID string  `json:"restaurant_id"`
	OrderAmount  float64 `json:"order_amount"`
}

// ValidateCouponJSON is the outcome of a read-only coupon check.
type ValidateCouponJSON struct {
	Valid        bool   `json:"valid"`
	Code         string `json:"code"`
	DiscountType string `json:"discount_type"`
	Discount     string `json:"discount"`
	OrderAmount  string `json:"order_amount"`
	FinalAmount  string `json:"final_amount"`
}

// ValidateCoupon checks a coupon against a prospective order without
// redeeming it, so the client can show the discount before checkout.
func (s *Server) ValidateCoupon(c echo.Context) error {
	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid restaurant_id"))
	}

	query, err := queries.NewValidateCouponQuery(
		req.Code,
		actorFrom(c).UserID,
		restaurantID,
		kernel.NewMoneyFromFloat(req.OrderAmount),
	)
	if err != nil {
		return writeError(c, err)
	}

	checked, err := s.validateCouponHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ValidateCouponJSON{
		Valid:        true,
		Code:         checked.Code,
		DiscountType: checked.DiscountType,
		Discount:     checked.Discount,
		OrderAmount:  checked.OrderAmount,
		FinalAmount:  checked.FinalAmount,
	})
}
