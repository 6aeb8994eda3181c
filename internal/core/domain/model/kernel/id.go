package kernel

import (
	"fmt"
	"sync/atomic"

	"pressing/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID, IDFromInt64 or ParseID")

var idNode atomic.Pointer[snowflake.Node]

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	idNode.Store(node)
}

// ConfigureIDNode selects the snowflake node used by NewID. Every running
// instance must use a distinct node number in [0, 1023].
func ConfigureIDNode(nodeNumber int64) error {
	node, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		return errs.NewValueIsOutOfRangeErrorWithCause("snowflake node", nodeNumber, 0, 1023, err)
	}
	idNode.Store(node)
	return nil
}

// ID is a positive numeric identifier. Orders, payments and catalog items get
// time-ordered snowflake values; clients, pressings and plants keep whatever
// positive id their own tables assigned.
type ID struct {
	value snowflake.ID
}

func NewID() ID {
	return ID{value: idNode.Load().Generate()}
}

func IDFromInt64(v int64) (ID, error) {
	id := ID{value: snowflake.ParseInt64(v)}
	if err := id.Validate(); err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive integer", v))
	}
	return id, nil
}

func ParseID(s string) (ID, error) {
	v, err := snowflake.ParseString(s)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not a number", s))
	}
	return IDFromInt64(v.Int64())
}

func (id ID) Int64() int64 {
	return id.value.Int64()
}

func (id ID) String() string {
	return id.value.String()
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

func (id ID) Validate() error {
	if id.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}

// SameID reports whether two optional ids are both nil or equal.
func SameID(a, b *ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}
