package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an Item that was not created
// via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a dish, the quantity ordered, and the price
// the customer saw at checkout. The line subtotal is supplied by the client
// and trusted as-is; it becomes part of the immutable financial snapshot of
// the order.
type Item struct { //nolint:recvcheck //using for validation
	dishID         kernel.UUID
	name           string
	quantity       int
	unitPrice      kernel.Money
	subtotal       kernel.Money
	customizations []string

	guard guard.ConstructorGuard
}

// NewItem creates an order line. The dish id must be valid, the name
// non-empty, the quantity positive, and both amounts non-negative.
func NewItem(
	dishID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	subtotal kernel.Money,
	customizations []string,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setDishID(dishID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setSubtotal(subtotal),
	); err != nil {
		return Item{}, err
	}

	item.customizations = append([]string(nil), customizations...)
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// DishID returns the identifier of the ordered dish.
func (i Item) DishID() kernel.UUID {
	return i.dishID
}

// Name returns the dish name as it appeared at checkout.
func (i Item) Name() string {
	return i.name
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns the client-supplied line subtotal.
func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

// Customizations returns a copy of the customization notes for the line.
func (i Item) Customizations() []string {
	return append([]string(nil), i.customizations...)
}

func (i *Item) setDishID(dishID kernel.UUID) error {
	if err := dishID.Validate(); err != nil {
		return err
	}
	i.dishID = dishID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidError("unitPrice")
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setSubtotal(subtotal kernel.Money) error {
	if subtotal.IsNegative() {
		return errs.NewValueIsInvalidError("item subtotal")
	}
	i.subtotal = subtotal
	return nil
}
