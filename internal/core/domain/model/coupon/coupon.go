package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for coupon operations.
var (
	// ErrCouponIsNotConstructed is returned when using an improperly
	// initialized Coupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")
	// ErrCodeIsRequired is returned when creating a coupon without a code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
)

// DiscountType selects how the coupon's value is applied.
type DiscountType string

const (
	// DiscountPercentage takes a percentage off the order amount.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed takes a fixed amount off the order amount.
	DiscountFixed DiscountType = "fixed"
)

// ParseDiscountType converts a wire string into a DiscountType.
func ParseDiscountType(s string) (DiscountType, error) {
	switch dt := DiscountType(s); dt {
	case DiscountPercentage, DiscountFixed:
		return dt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("discountType",
			fmt.Errorf("%q is not a recognized discount type", s))
	}
}

// Scope limits which restaurants a coupon applies to.
type Scope string

const (
	// ScopeAll applies the coupon to every restaurant.
	ScopeAll Scope = "all"
	// ScopeSpecificRestaurants applies the coupon only to the listed
	// restaurants.
	ScopeSpecificRestaurants Scope = "specific_restaurants"
)

// Coupon is the aggregate root for a promotional code. DiscountFor runs the
// full eligibility check and discount computation; the checks run in a fixed
// order so the customer always sees the most specific rejection first.
type Coupon struct {
	id   kernel.UUID
	code string

	discountType      DiscountType
	discountValue     kernel.Money
	minOrderAmount    kernel.Money
	maxDiscountAmount *kernel.Money

	usageLimit *int
	usageCount int

	validFrom  *time.Time
	validUntil *time.Time

	applicableTo  Scope
	restaurantIDs []kernel.UUID

	isForNewUsersOnly bool
	isActive          bool

	guard guard.ConstructorGuard
}

// NewCoupon creates a new active Coupon. The code is normalized to upper
// case so lookups are case-insensitive. A nil usageLimit means unlimited
// use; a nil maxDiscountAmount means an uncapped percentage. Each validity
// bound is optional: a nil validFrom is valid immediately, a nil validUntil
// never expires.
func NewCoupon(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	discountValue kernel.Money,
	minOrderAmount kernel.Money,
	maxDiscountAmount *kernel.Money,
	usageLimit *int,
	validFrom *time.Time,
	validUntil *time.Time,
	applicableTo Scope,
	restaurantIDs []kernel.UUID,
	isForNewUsersOnly bool,
) (*Coupon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrCodeIsRequired
	}
	if _, err := ParseDiscountType(string(discountType)); err != nil {
		return nil, err
	}
	if discountValue.IsNegative() || discountValue.IsZero() {
		return nil, errs.NewValueIsInvalidError("discountValue")
	}
	if minOrderAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("minOrderAmount")
	}
	if validFrom != nil && validUntil != nil && !validUntil.After(*validFrom) {
		return nil, errs.NewValueIsInvalidErrorWithCause("validUntil",
			errors.New("validity window is empty"))
	}
	if applicableTo == ScopeSpecificRestaurants && len(restaurantIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("restaurantIds")
	}
	if applicableTo != ScopeAll && applicableTo != ScopeSpecificRestaurants {
		return nil, errs.NewValueIsInvalidError("applicableTo")
	}

	return &Coupon{
		id:                id,
		code:              strings.ToUpper(code),
		discountType:      discountType,
		discountValue:     discountValue,
		minOrderAmount:    minOrderAmount,
		maxDiscountAmount: maxDiscountAmount,
		usageLimit:        usageLimit,
		validFrom:         validFrom,
		validUntil:        validUntil,
		applicableTo:      applicableTo,
		restaurantIDs:     append([]kernel.UUID(nil), restaurantIDs...),
		isForNewUsersOnly: isForNewUsersOnly,
		isActive:          true,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// RestoreCoupon reconstructs a Coupon aggregate from persistent storage.
func RestoreCoupon(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	discountValue kernel.Money,
	minOrderAmount kernel.Money,
	maxDiscountAmount *kernel.Money,
	usageLimit *int,
	usageCount int,
	validFrom *time.Time,
	validUntil *time.Time,
	applicableTo Scope,
	restaurantIDs []kernel.UUID,
	isForNewUsersOnly bool,
	isActive bool,
) (*Coupon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrCodeIsRequired
	}

	return &Coupon{
		id:                id,
		code:              strings.ToUpper(code),
		discountType:      discountType,
		discountValue:     discountValue,
		minOrderAmount:    minOrderAmount,
		maxDiscountAmount: maxDiscountAmount,
		usageLimit:        usageLimit,
		usageCount:        usageCount,
		validFrom:         validFrom,
		validUntil:        validUntil,
		applicableTo:      applicableTo,
		restaurantIDs:     append([]kernel.UUID(nil), restaurantIDs...),
		isForNewUsersOnly: isForNewUsersOnly,
		isActive:          isActive,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Coupon instance was properly constructed.
func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

// DiscountFor checks the coupon against an order and returns the discount
// amount. priorOrders is how many orders the customer has placed before;
// it backs the new-users-only rule.
//
// Checks run in order: active, validity window, usage limit, minimum order
// amount, new-users-only, restaurant scope. The first failing check decides
// the returned error.
//
// The discount never exceeds the order amount. Percentage discounts are
// rounded to two decimals and clamped by maxDiscountAmount when set.
func (c *Coupon) DiscountFor(
	orderAmount kernel.Money,
	restaurantID kernel.UUID,
	priorOrders int,
	now time.Time,
) (kernel.Money, error) {
	if !c.isActive {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon is not active"))
	}
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon is not valid yet"))
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon has expired"))
	}
	if c.usageLimit != nil && c.usageCount >= *c.usageLimit {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon usage limit reached"))
	}
	if orderAmount.LessThan(c.minOrderAmount) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			fmt.Errorf("minimum order amount is %s", c.minOrderAmount.String()))
	}
	if c.isForNewUsersOnly && priorOrders > 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon is for new users only"))
	}
	if c.applicableTo == ScopeSpecificRestaurants && !c.appliesToRestaurant(restaurantID) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("couponCode",
			errors.New("coupon is not applicable to this restaurant"))
	}

	var discount kernel.Money
	switch c.discountType {
	case DiscountPercentage:
		discount = orderAmount.MulFloat(c.discountValue.Float64() / 100)
		if c.maxDiscountAmount != nil {
			discount = discount.Min(*c.maxDiscountAmount)
		}
	case DiscountFixed:
		discount = c.discountValue
	}

	return discount.Min(orderAmount), nil
}

// Deactivate turns the coupon off. Used by the expiry job once validUntil
// has passed.
func (c *Coupon) Deactivate() {
	c.isActive = false
}

// RecordUsage bumps the in-memory usage counter. The persistence layer
// increments the stored counter atomically; this keeps the aggregate in
// step within a transaction.
func (c *Coupon) RecordUsage() {
	c.usageCount++
}

func (c *Coupon) appliesToRestaurant(restaurantID kernel.UUID) bool {
	for _, id := range c.restaurantIDs {
		if id.IsEqual(restaurantID) {
			return true
		}
	}
	return false
}

// ID returns the coupon's unique identifier.
func (c *Coupon) ID() kernel.UUID { return c.id }

// Code returns the normalized (upper-case) coupon code.
func (c *Coupon) Code() string { return c.code }

// DiscountType returns how the coupon's value is applied.
func (c *Coupon) DiscountType() DiscountType { return c.discountType }

// DiscountValue returns the percentage points or fixed amount.
func (c *Coupon) DiscountValue() kernel.Money { return c.discountValue }

// MinOrderAmount returns the minimum order amount for eligibility.
func (c *Coupon) MinOrderAmount() kernel.Money { return c.minOrderAmount }

// MaxDiscountAmount returns the percentage cap, nil if uncapped.
func (c *Coupon) MaxDiscountAmount() *kernel.Money { return c.maxDiscountAmount }

// UsageLimit returns the redemption cap, nil if unlimited.
func (c *Coupon) UsageLimit() *int { return c.usageLimit }

// UsageCount returns how many times the coupon has been redeemed.
func (c *Coupon) UsageCount() int { return c.usageCount }

// ValidFrom returns the start of the validity window, nil if the coupon
// is valid immediately.
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }

// ValidUntil returns the end of the validity window, nil if the coupon
// never expires.
func (c *Coupon) ValidUntil() *time.Time { return c.validUntil }

// ApplicableTo returns the restaurant scope of the coupon.
func (c *Coupon) ApplicableTo() Scope { return c.applicableTo }

// RestaurantIDs returns a copy of the scoped restaurant list.
func (c *Coupon) RestaurantIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.restaurantIDs...)
}

// IsForNewUsersOnly reports whether only first-time customers may redeem.
func (c *Coupon) IsForNewUsersOnly() bool { return c.isForNewUsersOnly }

// IsActive reports whether the coupon is live.
func (c *Coupon) IsActive() bool { return c.isActive }
