package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValidateCouponQueryHandler runs the coupon eligibility rules read-only.
// The handler restores the coupon aggregate from its row so the discount
// logic lives in exactly one place.
type ValidateCouponQueryHandler struct {
	db *gorm.DB
}

// NewValidateCouponQueryHandler creates a handler for read-only coupon
// checks.
func NewValidateCouponQueryHandler(db *gorm.DB) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{db: db}
}

// Handle executes the coupon check.
func (h ValidateCouponQueryHandler) Handle(
	ctx context.Context,
	query ValidateCouponQuery,
) (ValidateCouponResponse, error) {
	if err := query.Validate(); err != nil {
		return ValidateCouponResponse{}, err
	}

	checked, err := h.loadCoupon(ctx, query.Code())
	if err != nil {
		return ValidateCouponResponse{}, err
	}

	var priorOrders int64
	err = h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders WHERE customer_id = ?`, query.CustomerID().Bytes()).
		Scan(&priorOrders).Error
	if err != nil {
		return ValidateCouponResponse{}, err
	}

	discount, err := checked.DiscountFor(
		query.OrderAmount(), query.RestaurantID(), int(priorOrders), time.Now().UTC())
	if err != nil {
		return ValidateCouponResponse{}, err
	}

	return ValidateCouponResponse{
		Code:         checked.Code(),
		DiscountType: string(checked.DiscountType()),
		Discount:     discount.String(),
		OrderAmount:  query.OrderAmount().String(),
		FinalAmount:  query.OrderAmount().Sub(discount).String(),
	}, nil
}

func (h ValidateCouponQueryHandler) loadCoupon(
	ctx context.Context,
	code string,
) (*coupon.Coupon, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			discount_type,
			discount_value,
			min_order_amount,
			max_discount_amount,
			usage_limit,
			usage_count,
			valid_from,
			valid_until,
			applicable_to,
			restaurant_ids,
			is_for_new_users_only,
			is_active
		FROM coupons
		WHERE code = ? AND is_active
	`, code).Row()

	var (
		id                uuid.UUID
		couponCode        string
		discountType      string
		discountValue     decimal.Decimal
		minOrderAmount    decimal.Decimal
		maxDiscountAmount decimal.NullDecimal
		usageLimit        sql.NullInt64
		usageCount        int
		validFrom         sql.NullTime
		validUntil        sql.NullTime
		applicableTo      string
		restaurantIDsRaw  []byte
		isForNewUsersOnly bool
		isActive          bool
	)

	err := row.Scan(
		&id, &couponCode, &discountType, &discountValue,
		&minOrderAmount, &maxDiscountAmount, &usageLimit, &usageCount,
		&validFrom, &validUntil, &applicableTo, &restaurantIDsRaw,
		&isForNewUsersOnly, &isActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("couponCode", code)
	}
	if err != nil {
		return nil, err
	}

	couponID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	restaurantIDs, err := decodeUUIDList(restaurantIDsRaw)
	if err != nil {
		return nil, err
	}

	var maxDiscount *kernel.Money
	if maxDiscountAmount.Valid {
		m := kernel.MoneyFromDecimal(maxDiscountAmount.Decimal)
		maxDiscount = &m
	}
	var limit *int
	if usageLimit.Valid {
		l := int(usageLimit.Int64)
		limit = &l
	}
	var from, until *time.Time
	if validFrom.Valid {
		from = &validFrom.Time
	}
	if validUntil.Valid {
		until = &validUntil.Time
	}

	return coupon.RestoreCoupon(
		couponID, couponCode,
		coupon.DiscountType(discountType),
		kernel.MoneyFromDecimal(discountValue),
		kernel.MoneyFromDecimal(minOrderAmount),
		maxDiscount, limit, usageCount,
		from, until,
		coupon.Scope(applicableTo), restaurantIDs,
		isForNewUsersOnly, isActive,
	)
}

// decodeUUIDList unpacks a JSON array of UUID strings.
func decodeUUIDList(raw []byte) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(strs))
	for _, s := range strs {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
