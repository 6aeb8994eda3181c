package services

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
)

// OrderScope is the part of an order that decides who may see and move it.
// Query handlers build it from read models, command handlers from aggregates.
type OrderScope struct {
	PressingID kernel.ID
	PlantID    *kernel.ID
	Status     order.Status
}

func ScopeOf(o *order.Order) OrderScope {
	return OrderScope{
		PressingID: o.PressingID(),
		PlantID:    o.PlantID(),
		Status:     o.Status(),
	}
}

// AccessPolicy is a domain service that scopes every operation to the
// caller's role and to the pressing or plant asserted by the identity provider.
//
// Scope rules:
//   - ADMIN reaches every order and every pressing
//   - SUPERVISOR reaches orders and catalog of its own pressing
//   - PLANT_OPERATOR reaches collected, unassigned orders and orders of its own plant
//   - a role whose pressing or plant claim is missing is forbidden
//
// Example usage:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.CanTransition(actor, o); err != nil {
//	    return nil, err // *errs.ForbiddenError
//	}
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanViewOrder checks read access to a single order.
func (p AccessPolicy) CanViewOrder(actor identity.Actor, scope OrderScope) error {
	return p.checkOrderScope(actor, scope, "view order")
}

// CanTransition checks that the order lies within the actor's zone. Whether
// the requested status is legal is decided separately by order.CheckTransition.
func (p AccessPolicy) CanTransition(actor identity.Actor, o *order.Order) error {
	return p.checkOrderScope(actor, ScopeOf(o), "transition order")
}

// ResolveTransitionPlant returns the plant to attach when moving to target.
// A plant operator always receives into its own plant; any other plant in
// the request is refused.
func (p AccessPolicy) ResolveTransitionPlant(
	actor identity.Actor, target order.Status, requested *kernel.ID,
) (*kernel.ID, error) {
	if target != order.ReceivedAtPlant || actor.Role() != identity.PlantOperator {
		return requested, nil
	}

	own := actor.PlantID()
	if own == nil {
		return nil, forbidden("receive order at plant", "no plant is attached to the caller")
	}
	if requested != nil && !requested.IsEqual(*own) {
		return nil, forbidden("receive order at plant", "plant operators can only receive into their own plant")
	}
	return own, nil
}

// CanHandlePayments is checked before an order is even looked up: plant
// operators never record payments.
func (p AccessPolicy) CanHandlePayments(actor identity.Actor) error {
	switch actor.Role() {
	case identity.Admin, identity.Supervisor:
		return nil
	case identity.PlantOperator:
		return forbidden("record payment", "plant operators never handle payment")
	default:
		return forbidden("record payment", "unknown role")
	}
}

// CanRecordPayment checks payment access to a specific order.
func (p AccessPolicy) CanRecordPayment(actor identity.Actor, o *order.Order) error {
	if err := p.CanHandlePayments(actor); err != nil {
		return err
	}
	if actor.Role() == identity.Supervisor {
		return ownPressing(actor, o.PressingID(), "record payment")
	}
	return nil
}

// OrderCreationPressing returns the pressing a new order belongs to. It is
// always taken from the caller's claims.
func (p AccessPolicy) OrderCreationPressing(actor identity.Actor) (kernel.ID, error) {
	switch actor.Role() {
	case identity.Admin, identity.Supervisor:
	default:
		return kernel.ID{}, forbidden("create order", "only supervisors and administrators create orders")
	}

	own := actor.PressingID()
	if own == nil {
		return kernel.ID{}, forbidden("create order", "no pressing is attached to the caller")
	}
	return *own, nil
}

// ResolvePressingScope picks the pressing for catalog operations and the
// by-pressing order list. Supervisors are pinned to their own pressing;
// administrators name one or fall back to their own claim.
func (p AccessPolicy) ResolvePressingScope(actor identity.Actor, requested *kernel.ID) (kernel.ID, error) {
	own := actor.PressingID()

	switch actor.Role() {
	case identity.Supervisor:
		if own == nil {
			return kernel.ID{}, forbidden("access pressing", "no pressing is attached to the caller")
		}
		if requested != nil && !requested.IsEqual(*own) {
			return kernel.ID{}, forbidden("access pressing", "supervisors only reach their own pressing")
		}
		return *own, nil
	case identity.Admin:
		if requested != nil {
			return *requested, nil
		}
		if own != nil {
			return *own, nil
		}
		return kernel.ID{}, errs.NewValueIsRequiredError("pressingId")
	default:
		return kernel.ID{}, forbidden("access pressing", "role has no pressing scope")
	}
}

// ResolvePlantScope is the plant counterpart of ResolvePressingScope.
func (p AccessPolicy) ResolvePlantScope(actor identity.Actor, requested *kernel.ID) (kernel.ID, error) {
	own := actor.PlantID()

	switch actor.Role() {
	case identity.PlantOperator:
		if own == nil {
			return kernel.ID{}, forbidden("access plant", "no plant is attached to the caller")
		}
		if requested != nil && !requested.IsEqual(*own) {
			return kernel.ID{}, forbidden("access plant", "plant operators only reach their own plant")
		}
		return *own, nil
	case identity.Admin:
		if requested != nil {
			return *requested, nil
		}
		if own != nil {
			return *own, nil
		}
		return kernel.ID{}, errs.NewValueIsRequiredError("plantId")
	default:
		return kernel.ID{}, forbidden("access plant", "role has no plant scope")
	}
}

// CanListCollected grants the cross-plant view of orders awaiting a plant.
func (p AccessPolicy) CanListCollected(actor identity.Actor) error {
	switch actor.Role() {
	case identity.Admin:
		return nil
	case identity.PlantOperator:
		if actor.PlantID() == nil {
			return forbidden("list collected orders", "no plant is attached to the caller")
		}
		return nil
	default:
		return forbidden("list collected orders", "only plant operators and administrators see collected orders")
	}
}

// CanListAll grants the unscoped order list.
func (p AccessPolicy) CanListAll(actor identity.Actor) error {
	if actor.Role() != identity.Admin {
		return forbidden("list all orders", "only administrators see every order")
	}
	return nil
}

func (p AccessPolicy) checkOrderScope(actor identity.Actor, scope OrderScope, action string) error {
	switch actor.Role() {
	case identity.Admin:
		return nil
	case identity.Supervisor:
		return ownPressing(actor, scope.PressingID, action)
	case identity.PlantOperator:
		own := actor.PlantID()
		if own == nil {
			return forbidden(action, "no plant is attached to the caller")
		}
		if scope.PlantID == nil && scope.Status == order.Collected {
			return nil
		}
		if scope.PlantID != nil && scope.PlantID.IsEqual(*own) {
			return nil
		}
		return forbidden(action, "order is not collected and not assigned to the caller's plant")
	default:
		return forbidden(action, "unknown role")
	}
}

func ownPressing(actor identity.Actor, pressingID kernel.ID, action string) error {
	own := actor.PressingID()
	if own == nil {
		return forbidden(action, "no pressing is attached to the caller")
	}
	if !own.IsEqual(pressingID) {
		return forbidden(action, "order belongs to another pressing")
	}
	return nil
}

func forbidden(action, reason string) error {
	return errs.NewForbiddenErrorWithCause(action, errors.New(reason))
}
