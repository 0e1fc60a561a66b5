package queries

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrValidateCouponQueryIsNotConstructed = errors.New(
	"ValidateCouponQuery must be created via NewValidateCouponQuery constructor",
)

// ValidateCouponQuery checks a coupon against a prospective order without
// redeeming it. Checkout runs the same rules again inside the order
// transaction; this read-only pass exists so the client can show the
// discount before the customer commits.
type ValidateCouponQuery struct { //nolint:recvcheck //using for validation
	code         string
	customerID   kernel.UUID
	restaurantID kernel.UUID
	orderAmount  kernel.Money

	guard guard.ConstructorGuard
}

// NewValidateCouponQuery creates a read-only coupon validation query.
func NewValidateCouponQuery(
	code string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	orderAmount kernel.Money,
) (ValidateCouponQuery, error) {
	if code == "" {
		return ValidateCouponQuery{}, errs.NewValueIsRequiredError("code")
	}
	if err := errors.Join(
		customerID.Validate(),
		restaurantID.Validate(),
	); err != nil {
		return ValidateCouponQuery{}, err
	}
	if orderAmount.IsNegative() {
		return ValidateCouponQuery{}, errs.NewValueIsInvalidError("orderAmount")
	}

	return ValidateCouponQuery{
		code:         strings.ToUpper(code),
		customerID:   customerID,
		restaurantID: restaurantID,
		orderAmount:  orderAmount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ValidateCouponQuery) Validate() error {
	return q.guard.Validate(ErrValidateCouponQueryIsNotConstructed)
}

// Code returns the normalized coupon code.
func (q ValidateCouponQuery) Code() string { return q.code }

// CustomerID returns the prospective customer's identifier.
func (q ValidateCouponQuery) CustomerID() kernel.UUID { return q.customerID }

// RestaurantID returns the prospective restaurant's identifier.
func (q ValidateCouponQuery) RestaurantID() kernel.UUID { return q.restaurantID }

// OrderAmount returns the prospective order subtotal.
func (q ValidateCouponQuery) OrderAmount() kernel.Money { return q.orderAmount }

// ValidateCouponResponse is the outcome of a read-only coupon check.
type ValidateCouponResponse struct {
	Code         string
	DiscountType string
	Discount     string
	OrderAmount  string
	FinalAmount  string
}
