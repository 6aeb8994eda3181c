package order

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// Status represents the physical stage of an order. Stages are ordered and an
// order only ever moves one stage forward:
//
//	CREATED ──> COLLECTED ──> RECEIVED_AT_PLANT ──> PROCESSING ──> PROCESSED
//	   (pressing)   (transit)        └──────────── plant ────────────┘
//	──> DISPATCHED ──> READY ──> DELIVERED
//	    (transit)     (pressing)   (terminal)
//
// Which role may push an order across which boundary is decided by NextStatus.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota

	// Created: the order was placed at the pressing, nothing moved yet.
	Created

	// Collected: picked up from the pressing and in transit to a plant.
	// Visible to every plant operator until one of them receives it.
	Collected

	// ReceivedAtPlant: a specific plant accepted the order. The plant
	// assignment made at this stage is permanent.
	ReceivedAtPlant

	// Processing and Processed are internal plant work states.
	Processing
	Processed

	// Dispatched: left the plant, in transit back to the pressing.
	Dispatched

	// Ready: back at the pressing, awaiting the client.
	Ready

	// Delivered: handed to the client. Terminal; unlocks payment recording.
	Delivered
)

// Stages returns the canonical sequence, index 0 to 7.
func Stages() []Status {
	return []Status{Created, Collected, ReceivedAtPlant, Processing, Processed, Dispatched, Ready, Delivered}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		Created:         "CREATED",
		Collected:       "COLLECTED",
		ReceivedAtPlant: "RECEIVED_AT_PLANT",
		Processing:      "PROCESSING",
		Processed:       "PROCESSED",
		Dispatched:      "DISPATCHED",
		Ready:           "READY",
		Delivered:       "DELIVERED",
	}
}

// ParseStatus converts the wire name of a stage (e.g. "COLLECTED") to a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Stages() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts only the eight stages of the canonical sequence.
func (s Status) Validate() error {
	if s < Created || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Index is the position in the canonical sequence, or -1 for invalid values.
func (s Status) Index() int {
	if s.Validate() != nil {
		return -1
	}
	return int(s - Created)
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// successor returns the immediate next stage of the canonical sequence.
func (s Status) successor() (Status, bool) {
	if s.Validate() != nil || s.IsTerminal() {
		return Unknown, false
	}
	return s + 1, true
}
