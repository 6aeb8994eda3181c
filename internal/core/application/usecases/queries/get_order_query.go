package queries

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of actor.
type GetOrderQuery struct {
	actor   identity.Actor
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor identity.Actor, orderID kernel.ID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() identity.Actor {
	return q.actor
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}
