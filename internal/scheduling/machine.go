// Package scheduling owns the interview booking workflow: a pure state
// machine over the slot-selection lifecycle plus an effect runner that
// issues the two network calls. Recruiter-initiated and applicant-initiated
// bookings share the machine and differ only in which mutation the runner
// dispatches.
package scheduling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RJBOGA/JAP/internal/portal"
)

// State is one phase of the booking workflow.
type State string

const (
	// StateLoading: the slot fetch is outstanding.
	StateLoading State = "loading"
	// StateLoaded: slots are available for selection.
	StateLoaded State = "loaded"
	// StateConfirming: a booking request is outstanding. This state is the
	// mutual-exclusion guard: no second booking is issued while in it.
	StateConfirming State = "confirming"
	// StateConfirmed: the booking succeeded. Terminal.
	StateConfirmed State = "confirmed"
	// StateFailed: the slot fetch failed. Terminal short of cancellation.
	StateFailed State = "failed"
)

// ConflictMarker is the substring the backend embeds in its error text when
// the chosen slot was taken between fetch and confirm. The backend reports
// conflicts only through this literal ("Conflict detected. Slot
// unavailable."), not a structured error kind, so this coupling is fragile
// by contract and must track backend wording.
const ConflictMarker = "Conflict detected"

// ConflictMessage is what the user sees in place of the raw backend text.
const ConflictMessage = "Conflict: that slot was just booked or is unavailable. Pick another slot."

// IsConflict reports whether a booking failure is a recoverable scheduling
// conflict rather than a generic error.
func IsConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), ConflictMarker)
}

// Machine is the immutable workflow state. Transitions go through Apply;
// callers never mutate fields directly.
type Machine struct {
	State    State
	Slots    []string
	Selected string
	Message  string
	Booked   *portal.Interview
}

// NewMachine returns the initial machine, waiting for slots.
func NewMachine() Machine {
	return Machine{State: StateLoading}
}

// Event is a workflow occurrence the machine reacts to.
type Event interface {
	event()
}

// SlotsLoaded: the slot fetch completed.
type SlotsLoaded struct{ Slots []string }

// LoadFailed: the slot fetch failed.
type LoadFailed struct{ Err error }

// SlotSelected: the user picked a slot from the loaded list.
type SlotSelected struct{ Slot string }

// BookingSucceeded: the booking mutation confirmed the interview.
type BookingSucceeded struct{ Booked *portal.Interview }

// BookingFailed: the booking mutation failed, conflict or otherwise.
type BookingFailed struct{ Err error }

func (SlotsLoaded) event()      {}
func (LoadFailed) event()       {}
func (SlotSelected) event()     {}
func (BookingSucceeded) event() {}
func (BookingFailed) event()    {}

// Apply is the pure transition function. Events outside the allowed
// transition table return an error and leave the machine unchanged, so a
// confirmed workflow accepts nothing further and a booking cannot be issued
// twice.
func Apply(m Machine, ev Event) (Machine, error) {
	switch e := ev.(type) {
	case SlotsLoaded:
		if m.State != StateLoading {
			return m, transitionError(m.State, ev)
		}
		m.State = StateLoaded
		m.Slots = e.Slots
		m.Message = ""
		return m, nil

	case LoadFailed:
		if m.State != StateLoading {
			return m, transitionError(m.State, ev)
		}
		m.State = StateFailed
		m.Message = failureMessage(e.Err, "fetching interview slots failed")
		return m, nil

	case SlotSelected:
		if m.State != StateLoaded {
			return m, transitionError(m.State, ev)
		}
		if !containsSlot(m.Slots, e.Slot) {
			return m, fmt.Errorf("slot %q is not in the offered list", e.Slot)
		}
		m.State = StateConfirming
		m.Selected = e.Slot
		m.Message = ""
		return m, nil

	case BookingSucceeded:
		if m.State != StateConfirming {
			return m, transitionError(m.State, ev)
		}
		m.State = StateConfirmed
		m.Booked = e.Booked
		return m, nil

	case BookingFailed:
		if m.State != StateConfirming {
			return m, transitionError(m.State, ev)
		}
		// Both conflict and generic failures return to the selection
		// screen with the fetched slot list intact; slots are not
		// re-fetched, the user retries from the stale list or cancels.
		m.State = StateLoaded
		m.Selected = ""
		if IsConflict(e.Err) {
			m.Message = ConflictMessage
		} else {
			m.Message = failureMessage(e.Err, "booking failed")
		}
		return m, nil

	default:
		return m, fmt.Errorf("unknown event %T", ev)
	}
}

func transitionError(state State, ev Event) error {
	return fmt.Errorf("event %T is not valid in state %s", ev, state)
}

func failureMessage(err error, fallback string) string {
	var apiErr *portal.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return fmt.Sprintf("%s: %s", fallback, err)
	}
	return fallback
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
