package services

import (
	"errors"
	"strings"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
)

var ErrMixedStatuses = errors.New("orders do not share a common status")

// BatchPlanner validates a batch transition as a unit: every order must sit
// at the same status and that status must lead to target for role. Either
// the whole batch is allowed or none of it is.
type BatchPlanner struct{}

func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

func (BatchPlanner) Plan(orders []*order.Order, target order.Status, role identity.Role) error {
	if len(orders) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}

	var statuses []string
	seen := make(map[order.Status]bool)
	for _, o := range orders {
		if !seen[o.Status()] {
			seen[o.Status()] = true
			statuses = append(statuses, o.Status().String())
		}
	}

	if len(statuses) > 1 {
		return errs.NewTransitionNotAllowedErrorWithCause(
			strings.Join(statuses, "|"), target.String(), role.String(), "", ErrMixedStatuses)
	}

	return order.CheckTransition(orders[0].Status(), target, role)
}
