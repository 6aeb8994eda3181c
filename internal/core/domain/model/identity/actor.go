package identity

import (
	"errors"
	"strings"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// UserRef identifies the user behind a change, as recorded in history entries.
type UserRef struct {
	ID   string
	Name string
}

// Actor is the verified caller of an operation. Pressing and plant come from
// the identity provider, never from request payloads.
type Actor struct { //nolint:recvcheck //using for validation
	user       UserRef
	role       Role
	pressingID *kernel.ID
	plantID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewActor(userID, userName string, role Role, pressingID, plantID *kernel.ID) (Actor, error) {
	a := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setUser(userID, userName),
		a.setRole(role),
		a.setPressing(pressingID),
		a.setPlant(plantID),
	); err != nil {
		return Actor{}, err
	}

	return a, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) User() UserRef {
	return a.user
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) PressingID() *kernel.ID {
	return a.pressingID
}

func (a Actor) PlantID() *kernel.ID {
	return a.plantID
}

func (a *Actor) setUser(userID, userName string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		userName = userID
	}
	a.user = UserRef{ID: userID, Name: userName}
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Actor) setPressing(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	pressingID := *id
	a.pressingID = &pressingID
	return nil
}

func (a *Actor) setPlant(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	plantID := *id
	a.plantID = &plantID
	return nil
}
