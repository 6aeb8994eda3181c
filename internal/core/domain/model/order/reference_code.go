package order

import (
	"fmt"
	"regexp"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

var referenceCodePattern = regexp.MustCompile(`^P[1-9][0-9]*-[0-9]{8}-[0-9]{4,}$`)

// ReferenceCode is the counter-facing order number, P<pressingId>-<YYYYMMDD>-<sequence>.
// The sequence restarts at 1 every day for every pressing.
type ReferenceCode struct {
	value string
}

func NewReferenceCode(pressingID kernel.ID, day time.Time, sequence int64) (ReferenceCode, error) {
	if err := pressingID.Validate(); err != nil {
		return ReferenceCode{}, err
	}
	if sequence < 1 {
		return ReferenceCode{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence", fmt.Errorf("%d is not greater than 0", sequence))
	}
	return ReferenceCode{
		value: fmt.Sprintf("P%d-%s-%04d", pressingID.Int64(), day.Format("20060102"), sequence),
	}, nil
}

func ParseReferenceCode(s string) (ReferenceCode, error) {
	if !referenceCodePattern.MatchString(s) {
		return ReferenceCode{}, errs.NewValueIsInvalidErrorWithCause(
			"reference code", fmt.Errorf("%q does not match P<pressing>-<YYYYMMDD>-<sequence>", s))
	}
	return ReferenceCode{value: s}, nil
}

func (c ReferenceCode) String() string {
	return c.value
}

func (c ReferenceCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("reference code")
	}
	return nil
}
