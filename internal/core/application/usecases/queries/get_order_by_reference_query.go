package queries

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/guard"
)

var ErrGetOrderByReferenceQueryIsNotConstructed = errors.New(
	"GetOrderByReferenceQuery must be created via NewGetOrderByReferenceQuery constructor",
)

// GetOrderByReferenceQuery looks an order up by the code printed on its ticket.
type GetOrderByReferenceQuery struct {
	actor identity.Actor
	code  order.ReferenceCode

	guard guard.ConstructorGuard
}

func NewGetOrderByReferenceQuery(actor identity.Actor, code string) (GetOrderByReferenceQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderByReferenceQuery{}, err
	}
	ref, err := order.ParseReferenceCode(code)
	if err != nil {
		return GetOrderByReferenceQuery{}, err
	}
	return GetOrderByReferenceQuery{
		actor: actor,
		code:  ref,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderByReferenceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByReferenceQueryIsNotConstructed)
}

func (q GetOrderByReferenceQuery) Actor() identity.Actor {
	return q.actor
}

func (q GetOrderByReferenceQuery) ReferenceCode() order.ReferenceCode {
	return q.code
}
