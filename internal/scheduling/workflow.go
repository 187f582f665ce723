package scheduling

import (
	"fmt"
	"time"

	"github.com/RJBOGA/JAP/internal/portal"
	"go.uber.org/zap"
)

const (
	defaultDurationMinutes = 30
	defaultWindowDays      = 7
)

// API is the slice of the backend client the workflow drives.
type API interface {
	FindAvailableSlots(candidateID, jobID, durationMinutes, windowDays int) ([]string, error)
	BookInterview(jobID, candidateID int, start, end time.Time) (*portal.Interview, error)
	SelectInterviewSlot(applicationID int, start time.Time) (*portal.Interview, error)
}

// Target is the (candidate, job[, application]) tuple a workflow operates
// on. A non-zero ApplicationID selects applicant mode; the mode is fixed
// for the workflow's whole life.
type Target struct {
	CandidateID   int
	JobID         int
	JobTitle      string
	CandidateName string
	ApplicationID int
}

// ApplicantMode reports whether the booking goes through the applicant's
// self-select mutation instead of the recruiter's booking mutation.
func (t Target) ApplicantMode() bool {
	return t.ApplicationID != 0
}

// Workflow runs one scheduling panel: it owns a Machine, performs the two
// network calls and applies their outcomes as events. One workflow exists
// per scheduling target; starting a new target abandons the old workflow.
type Workflow struct {
	api    API
	logger *zap.Logger
	target Target

	durationMinutes int
	windowDays      int

	machine Machine
	closed  bool
}

// New creates a workflow in the Loading state. Non-positive duration or
// window fall back to the 30-minute / 7-day defaults.
func New(api API, target Target, durationMinutes, windowDays int, logger *zap.Logger) *Workflow {
	if durationMinutes <= 0 {
		durationMinutes = defaultDurationMinutes
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Workflow{
		api:             api,
		logger:          logger,
		target:          target,
		durationMinutes: durationMinutes,
		windowDays:      windowDays,
		machine:         NewMachine(),
	}
}

// Machine returns a snapshot of the current workflow state.
func (w *Workflow) Machine() Machine {
	return w.machine
}

// Target returns the tuple this workflow was opened for.
func (w *Workflow) Target() Target {
	return w.target
}

// Load performs the single slot fetch. An empty result is a valid Loaded
// state with zero slots; only a transport or backend error moves the
// machine to Failed. There is no retry.
func (w *Workflow) Load() error {
	if w.closed {
		return fmt.Errorf("workflow is closed")
	}

	slots, err := w.api.FindAvailableSlots(w.target.CandidateID, w.target.JobID, w.durationMinutes, w.windowDays)

	// A response landing after cancellation must not resurrect the panel.
	if w.closed {
		return nil
	}

	if err != nil {
		w.logger.Warn("slot fetch failed",
			zap.Int("candidate_id", w.target.CandidateID),
			zap.Int("job_id", w.target.JobID),
			zap.Error(err),
		)
		return w.apply(LoadFailed{Err: err})
	}

	w.logger.Debug("slots loaded",
		zap.Int("candidate_id", w.target.CandidateID),
		zap.Int("job_id", w.target.JobID),
		zap.Int("count", len(slots)),
	)
	return w.apply(SlotsLoaded{Slots: slots})
}

// Confirm books the chosen slot. Entering Confirming first makes the
// machine itself the mutual-exclusion guard: a second Confirm while a
// booking is outstanding is rejected by the transition table. On failure
// the machine returns to Loaded and only an explicit re-selection triggers
// another booking request.
func (w *Workflow) Confirm(slot string) error {
	if w.closed {
		return fmt.Errorf("workflow is closed")
	}

	if err := w.apply(SlotSelected{Slot: slot}); err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, slot)
	if err != nil {
		return w.apply(BookingFailed{Err: fmt.Errorf("slot %q is not a valid timestamp: %w", slot, err)})
	}

	var booked *portal.Interview
	var bookErr error

	if w.target.ApplicantMode() {
		booked, bookErr = w.api.SelectInterviewSlot(w.target.ApplicationID, start)
	} else {
		end := start.Add(time.Duration(w.durationMinutes) * time.Minute)
		booked, bookErr = w.api.BookInterview(w.target.JobID, w.target.CandidateID, start, end)
	}

	if w.closed {
		return nil
	}

	if bookErr != nil {
		w.logger.Warn("booking failed",
			zap.String("slot", slot),
			zap.Bool("applicant_mode", w.target.ApplicantMode()),
			zap.Bool("conflict", IsConflict(bookErr)),
			zap.Error(bookErr),
		)
		return w.apply(BookingFailed{Err: bookErr})
	}

	w.logger.Info("interview booked",
		zap.String("slot", slot),
		zap.Int("interview_id", booked.InterviewID),
		zap.Bool("applicant_mode", w.target.ApplicantMode()),
	)
	return w.apply(BookingSucceeded{Booked: booked})
}

// Cancel closes the workflow. Any state accepts it; responses arriving
// afterwards are dropped.
func (w *Workflow) Cancel() {
	w.closed = true
}

// Closed reports whether the workflow was cancelled.
func (w *Workflow) Closed() bool {
	return w.closed
}

func (w *Workflow) apply(ev Event) error {
	next, err := Apply(w.machine, ev)
	if err != nil {
		return err
	}
	w.machine = next
	return nil
}
