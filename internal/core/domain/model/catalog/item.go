package catalog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

const MaxLabelLength = 120

var ErrItemIsNotConstructed = errors.New("catalog Item must be created via NewItem constructor")

// NormalizeLabel is the comparison key of a label: two labels that normalize
// to the same key may not coexist in one pressing's catalog.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Item is a pressing-scoped (label, price) template used to prefill order
// lines. Orders copy its values; they never reference it.
type Item struct {
	id         kernel.ID
	pressingID kernel.ID
	label      string
	price      kernel.Money

	isConstructed bool
}

func NewItem(id, pressingID kernel.ID, label string, price kernel.Money) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setPressing(pressingID),
		item.setLabel(label),
	); err != nil {
		return nil, err
	}
	item.price = price

	return item, nil
}

// RestoreItem rebuilds a catalog item read from storage.
func RestoreItem(id, pressingID kernel.ID, label string, price kernel.Money) (*Item, error) {
	return NewItem(id, pressingID, label, price)
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.ID {
	return i.id
}

func (i *Item) PressingID() kernel.ID {
	return i.pressingID
}

func (i *Item) Label() string {
	return i.label
}

// LabelKey is NormalizeLabel(Label()).
func (i *Item) LabelKey() string {
	return NormalizeLabel(i.label)
}

func (i *Item) Price() kernel.Money {
	return i.price
}

// Update replaces label and price. Uniqueness of the new label is enforced by
// the repository.
func (i *Item) Update(label string, price kernel.Money) error {
	if err := i.setLabel(label); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setPressing(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pressingId", err)
	}
	i.pressingID = id
	return nil
}

func (i *Item) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return errs.NewValueIsOutOfRangeError("label length", n, 1, MaxLabelLength)
	}
	i.label = label
	return nil
}
