// Package couponrepo provides data transfer objects and mapping functions
// for coupon persistence.
package couponrepo

import (
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/coupon"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponDTO represents the database structure for persisting coupon
// aggregates. Nullable columns express the optional limits: a NULL usage
// limit means unlimited redemptions, a NULL max discount means uncapped,
// NULL validity bounds mean valid immediately and never expiring.
type CouponDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"uniqueIndex"`

	DiscountType      string
	DiscountValue     decimal.Decimal  `gorm:"type:numeric(12,2)"`
	MinOrderAmount    decimal.Decimal  `gorm:"type:numeric(12,2)"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:numeric(12,2)"`

	UsageLimit *int
	UsageCount int

	ValidFrom  *time.Time
	ValidUntil *time.Time `gorm:"index"`

	ApplicableTo  string
	RestaurantIDs []byte `gorm:"type:jsonb"`

	IsForNewUsersOnly bool
	IsActive          bool `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for coupon entities.
func (CouponDTO) TableName() string {
	return "coupons"
}

// fromDomain converts a coupon domain aggregate to its database
// representation.
func fromDomain(aggregate *coupon.Coupon) (CouponDTO, error) {
	restaurantIDs, err := marshalUUIDList(aggregate.RestaurantIDs())
	if err != nil {
		return CouponDTO{}, err
	}

	var maxDiscount *decimal.Decimal
	if m := aggregate.MaxDiscountAmount(); m != nil {
		d := m.Decimal()
		maxDiscount = &d
	}

	return CouponDTO{
		ID:                aggregate.ID().Bytes(),
		Code:              aggregate.Code(),
		DiscountType:      string(aggregate.DiscountType()),
		DiscountValue:     aggregate.DiscountValue().Decimal(),
		MinOrderAmount:    aggregate.MinOrderAmount().Decimal(),
		MaxDiscountAmount: maxDiscount,
		UsageLimit:        aggregate.UsageLimit(),
		UsageCount:        aggregate.UsageCount(),
		ValidFrom:         aggregate.ValidFrom(),
		ValidUntil:        aggregate.ValidUntil(),
		ApplicableTo:      string(aggregate.ApplicableTo()),
		RestaurantIDs:     restaurantIDs,
		IsForNewUsersOnly: aggregate.IsForNewUsersOnly(),
		IsActive:          aggregate.IsActive(),
	}, nil
}

// toDomain converts a database DTO to a coupon domain aggregate.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantIDs, err := unmarshalUUIDList(dto.RestaurantIDs)
	if err != nil {
		return nil, err
	}

	var maxDiscount *kernel.Money
	if dto.MaxDiscountAmount != nil {
		m := kernel.MoneyFromDecimal(*dto.MaxDiscountAmount)
		maxDiscount = &m
	}

	return coupon.RestoreCoupon(
		id,
		dto.Code,
		coupon.DiscountType(dto.DiscountType),
		kernel.MoneyFromDecimal(dto.DiscountValue),
		kernel.MoneyFromDecimal(dto.MinOrderAmount),
		maxDiscount,
		dto.UsageLimit,
		dto.UsageCount,
		dto.ValidFrom,
		dto.ValidUntil,
		coupon.Scope(dto.ApplicableTo),
		restaurantIDs,
		dto.IsForNewUsersOnly,
		dto.IsActive,
	)
}

func marshalUUIDList(ids []kernel.UUID) ([]byte, error) {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return json.Marshal(strs)
}

func unmarshalUUIDList(raw []byte) ([]kernel.UUID, error) {
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
