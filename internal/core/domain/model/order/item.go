package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

const (
	MaxLabelLength = 120
	MaxQuantity    = 10000
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. Label is free text, not a catalog reference, and the
// unit price is captured at creation and never recalculated.
type Item struct { //nolint:recvcheck //using for validation
	label     string
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

func NewItem(label string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setLabel(label),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	item.unitPrice = unitPrice

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Label() string {
	return i.label
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal is quantity × unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// TotalOf sums the line totals of items.
func TotalOf(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (i *Item) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return errs.NewValueIsOutOfRangeError("label length", n, 1, MaxLabelLength)
	}
	i.label = label
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}
