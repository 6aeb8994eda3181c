package identity

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// Role is the staff role asserted by the identity provider.
type Role int

const (
	UnknownRole Role = iota
	Admin
	Supervisor
	PlantOperator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:   "UNKNOWN",
		Admin:         "ADMIN",
		Supervisor:    "SUPERVISOR",
		PlantOperator: "PLANT_OPERATOR",
	}
}

func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsRequiredError("role")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}
