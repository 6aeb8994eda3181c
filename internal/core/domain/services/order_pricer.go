package services

import (
	"fmt"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
)

// OrderPricer computes the total of a prospective order and applies the
// pressing's minimum order amount. It has no side effects, so callers run it
// before any catalog write.
type OrderPricer struct{}

func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Quote returns Σ quantity × unit price over items. When the total does not
// fit the stored amount range, or minimum is set and the total is below it, a
// validation error is returned instead.
func (OrderPricer) Quote(items []order.Item, minimum *kernel.Money) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.Money{}, errs.NewValueIsRequiredError("items")
	}

	total := order.TotalOf(items)
	if !total.Storable() {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("totalAmount", total, 0, kernel.MaxMoney)
	}
	if minimum != nil && total.LessThan(*minimum) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s is below the minimum order amount of %s", total, minimum))
	}
	return total, nil
}
