package queries

import (
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderListScope selects which slice of the orders a list covers.
type OrderListScope string

const (
	ScopeByPressing OrderListScope = "by-pressing"
	ScopeByPlant    OrderListScope = "by-plant"
	ScopeCollected  OrderListScope = "collected"
	ScopeAll        OrderListScope = "all"
)

func ParseOrderListScope(s string) (OrderListScope, error) {
	switch scope := OrderListScope(s); scope {
	case ScopeByPressing, ScopeByPlant, ScopeCollected, ScopeAll:
		return scope, nil
	case "":
		return "", errs.NewValueIsRequiredError("scope")
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("%q is not one of by-pressing, by-plant, collected, all", s))
	}
}

// ListOrdersQuery lists orders newest first.
//
// PressingID and PlantID only matter to administrators, who name the
// pressing or plant they want to look at; other roles are pinned to their
// claims. Status optionally narrows the result to one stage.
type ListOrdersQuery struct {
	actor      identity.Actor
	scope      OrderListScope
	pressingID *kernel.ID
	plantID    *kernel.ID
	status     *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(
	actor identity.Actor,
	scope OrderListScope,
	pressingID *kernel.ID,
	plantID *kernel.ID,
	status *order.Status,
) (ListOrdersQuery, error) {
	errList := []error{actor.Validate()}
	if _, err := ParseOrderListScope(string(scope)); err != nil {
		errList = append(errList, err)
	}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor:      actor,
		scope:      scope,
		pressingID: pressingID,
		plantID:    plantID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() identity.Actor {
	return q.actor
}

func (q ListOrdersQuery) Scope() OrderListScope {
	return q.scope
}

func (q ListOrdersQuery) PressingID() *kernel.ID {
	return q.pressingID
}

func (q ListOrdersQuery) PlantID() *kernel.ID {
	return q.plantID
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}
