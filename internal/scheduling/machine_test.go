package scheduling

import (
	"errors"
	"testing"

	"github.com/RJBOGA/JAP/internal/portal"
)

func mustApply(t *testing.T, m Machine, ev Event) Machine {
	t.Helper()
	next, err := Apply(m, ev)
	if err != nil {
		t.Fatalf("unexpected transition error: %v", err)
	}
	return next
}

func TestHappyPathToConfirmed(t *testing.T) {
	m := NewMachine()
	if m.State != StateLoading {
		t.Fatalf("expected initial state loading, got %s", m.State)
	}

	m = mustApply(t, m, SlotsLoaded{Slots: []string{"2025-01-10T10:00:00Z"}})
	if m.State != StateLoaded || len(m.Slots) != 1 {
		t.Fatalf("expected loaded with one slot, got %s %v", m.State, m.Slots)
	}

	m = mustApply(t, m, SlotSelected{Slot: "2025-01-10T10:00:00Z"})
	if m.State != StateConfirming {
		t.Fatalf("expected confirming, got %s", m.State)
	}

	m = mustApply(t, m, BookingSucceeded{Booked: &portal.Interview{InterviewID: 1}})
	if m.State != StateConfirmed || m.Booked.InterviewID != 1 {
		t.Fatalf("expected confirmed, got %s", m.State)
	}
}

func TestConfirmedIsTerminal(t *testing.T) {
	m := Machine{State: StateConfirmed}

	events := []Event{
		SlotsLoaded{Slots: []string{"x"}},
		SlotSelected{Slot: "x"},
		BookingSucceeded{},
		BookingFailed{Err: errors.New("late")},
		LoadFailed{Err: errors.New("late")},
	}

	for _, ev := range events {
		if _, err := Apply(m, ev); err == nil {
			t.Fatalf("expected %T to be rejected in confirmed state", ev)
		}
	}
}

func TestConflictReturnsToLoadedWithSlotsIntact(t *testing.T) {
	slots := []string{"2025-01-10T10:00:00Z", "2025-01-10T11:00:00Z"}

	m := mustApply(t, NewMachine(), SlotsLoaded{Slots: slots})
	m = mustApply(t, m, SlotSelected{Slot: slots[0]})

	m = mustApply(t, m, BookingFailed{Err: &portal.APIError{Message: "Conflict detected. Slot unavailable."}})

	if m.State != StateLoaded {
		t.Fatalf("expected loaded after conflict, got %s", m.State)
	}
	if len(m.Slots) != 2 || m.Slots[0] != slots[0] || m.Slots[1] != slots[1] {
		t.Fatalf("expected slot list intact, got %v", m.Slots)
	}
	if m.Message != ConflictMessage {
		t.Fatalf("expected conflict message, got %q", m.Message)
	}
	if m.Selected != "" {
		t.Fatalf("expected selection cleared, got %q", m.Selected)
	}
}

func TestGenericBookingFailureMessage(t *testing.T) {
	m := mustApply(t, NewMachine(), SlotsLoaded{Slots: []string{"2025-01-10T10:00:00Z"}})
	m = mustApply(t, m, SlotSelected{Slot: "2025-01-10T10:00:00Z"})
	m = mustApply(t, m, BookingFailed{Err: &portal.APIError{Message: "Access denied"}})

	if m.State != StateLoaded {
		t.Fatalf("expected loaded, got %s", m.State)
	}
	if m.Message != "Access denied" {
		t.Fatalf("expected verbatim backend message, got %q", m.Message)
	}
}

func TestSelectionRequiresOfferedSlot(t *testing.T) {
	m := mustApply(t, NewMachine(), SlotsLoaded{Slots: []string{"2025-01-10T10:00:00Z"}})

	if _, err := Apply(m, SlotSelected{Slot: "2025-01-10T23:00:00Z"}); err == nil {
		t.Fatalf("expected selection of unknown slot to fail")
	}
}

func TestNoDoubleBookingWhileConfirming(t *testing.T) {
	m := mustApply(t, NewMachine(), SlotsLoaded{Slots: []string{"2025-01-10T10:00:00Z"}})
	m = mustApply(t, m, SlotSelected{Slot: "2025-01-10T10:00:00Z"})

	if _, err := Apply(m, SlotSelected{Slot: "2025-01-10T10:00:00Z"}); err == nil {
		t.Fatalf("expected re-selection to be rejected while confirming")
	}
}

func TestLoadFailureIsDistinctFromEmptySlots(t *testing.T) {
	failed := mustApply(t, NewMachine(), LoadFailed{Err: errors.New("connection refused")})
	if failed.State != StateFailed {
		t.Fatalf("expected failed, got %s", failed.State)
	}
	if failed.Message == "" {
		t.Fatalf("expected a failure message")
	}

	empty := mustApply(t, NewMachine(), SlotsLoaded{Slots: []string{}})
	if empty.State != StateLoaded || len(empty.Slots) != 0 {
		t.Fatalf("expected loaded with zero slots, got %s %v", empty.State, empty.Slots)
	}
}

func TestIsConflict(t *testing.T) {
	if !IsConflict(&portal.APIError{Message: "Conflict detected. Slot unavailable."}) {
		t.Fatalf("expected conflict to be recognized")
	}
	if IsConflict(errors.New("timeout")) {
		t.Fatalf("expected non-conflict error")
	}
	if IsConflict(nil) {
		t.Fatalf("nil is not a conflict")
	}
}
