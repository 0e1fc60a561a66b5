package services

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

const (
	// taxRate is applied to the pre-discount subtotal.
	taxRate = 0.16
	// defaultDeliveryFee is charged when the client does not send a fee.
	defaultDeliveryFee = 35.0
)

// PricingService computes the immutable financial snapshot of an order at
// creation time. The snapshot is never recomputed afterwards.
type PricingService interface {
	// Calculate produces the charges for the given order lines.
	//
	// subtotal is the sum of the line subtotals, tax is levied on the
	// pre-discount subtotal, and the total is
	// subtotal + deliveryFee - discount + tax + tip. Every amount is
	// rounded to two decimals.
	Calculate(items []order.Item, deliveryFee, discount, tip kernel.Money) (order.Charges, error)
}

var _ PricingService = &pricingService{}

type pricingService struct{}

// NewPricingService creates the production PricingService.
func NewPricingService() PricingService {
	return &pricingService{}
}

func (s *pricingService) Calculate(
	items []order.Item,
	deliveryFee, discount, tip kernel.Money,
) (order.Charges, error) {
	if len(items) == 0 {
		return order.Charges{}, errs.NewValueIsRequiredError("items")
	}
	if deliveryFee.IsNegative() || discount.IsNegative() || tip.IsNegative() {
		return order.Charges{}, errs.NewValueIsInvalidError("charges")
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return order.Charges{}, err
		}
		subtotal = subtotal.Add(item.Subtotal())
	}

	// A discount larger than the subtotal would drive the total negative.
	discount = discount.Min(subtotal)
	tax := subtotal.MulFloat(taxRate)
	total := subtotal.Add(deliveryFee).Sub(discount).Add(tax).Add(tip)

	charges := order.Charges{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Tax:         tax,
		Tip:         tip,
		Total:       total,
	}
	return charges, charges.Validate()
}

// DefaultDeliveryFee returns the fee charged when the client omits one.
func DefaultDeliveryFee() kernel.Money {
	return kernel.NewMoneyFromFloat(defaultDeliveryFee)
}
