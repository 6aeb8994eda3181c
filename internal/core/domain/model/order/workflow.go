package order

import (
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/pkg/errs"
)

// transitions is the single (role, current) -> next table shared by single and
// batch transitions. Each role may only push an order across the boundary it
// is physically responsible for; ADMIN may move any order one stage forward.
var transitions = map[identity.Role]map[Status]Status{
	identity.Admin: adminTransitions(),
	identity.Supervisor: {
		Created:    Collected,
		Dispatched: Ready,
		Ready:      Delivered,
	},
	identity.PlantOperator: {
		Collected:       ReceivedAtPlant,
		ReceivedAtPlant: Processing,
		Processing:      Processed,
		Processed:       Dispatched,
	},
}

func adminTransitions() map[Status]Status {
	table := make(map[Status]Status, len(Stages())-1)
	for _, s := range Stages() {
		if next, ok := s.successor(); ok {
			table[s] = next
		}
	}
	return table
}

// NextStatus returns the only stage role may move an order at current to.
// The boolean is false when the role has no transition from current.
//
// Example:
//
//	next, ok := order.NextStatus(order.Created, identity.Supervisor) // Collected, true
//	_, ok = order.NextStatus(order.Processing, identity.Supervisor)  // ok == false
func NextStatus(current Status, role identity.Role) (Status, bool) {
	next, ok := transitions[role][current]
	return next, ok
}

// CheckTransition accepts target only if it equals NextStatus(current, role).
// Skips, regressions and same-status no-ops are rejected with an
// errs.TransitionNotAllowedError naming the allowed next stage, if any.
func CheckTransition(current, target Status, role identity.Role) error {
	next, ok := NextStatus(current, role)
	if ok && next == target {
		return nil
	}

	allowed := ""
	if ok {
		allowed = next.String()
	}
	return errs.NewTransitionNotAllowedError(current.String(), target.String(), role.String(), allowed)
}
