// Package policy decides which actions a result view offers for the current
// role. It is a capability gate, not a display filter: the command layer
// must only dispatch requests for actions returned here, so hiding a
// control also disables its request path. The backend re-checks the role on
// every request; this gate is a UX convenience, not the security boundary.
package policy

import (
	"github.com/RJBOGA/JAP/internal/result"
	"github.com/RJBOGA/JAP/internal/session"
)

// Action is one user-invokable operation offered next to a rendered result.
type Action string

const (
	// ActionSchedule opens the recruiter-initiated scheduling workflow for
	// a candidate.
	ActionSchedule Action = "schedule"
	// ActionHire moves an application to the Hired status.
	ActionHire Action = "hire"
	// ActionReject moves an application to the Rejected status.
	ActionReject Action = "reject"
	// ActionSelfSchedule opens the applicant-initiated scheduling workflow
	// for an invitation the applicant received.
	ActionSelfSchedule Action = "self-schedule"
)

// Application status sentinels as the backend spells them.
const (
	StatusApplied      = "Applied"
	StatusInviteSent   = "Invite Sent"
	StatusInterviewing = "Interviewing"
	StatusHired        = "Hired"
	StatusRejected     = "Rejected"
)

// ActionsFor returns the actions a view offers at all for the given role.
// Per-entry eligibility is refined by UserActions and ApplicationActions.
func ActionsFor(view result.View, role session.Role) []Action {
	switch view.Kind {
	case result.KindApplicantsByJob, result.KindUserList, result.KindSingleUser:
		if role != session.RoleRecruiter {
			return nil
		}
		return []Action{ActionSchedule, ActionHire, ActionReject}
	case result.KindApplicationList, result.KindSingleApplication:
		if role != session.RoleApplicant {
			return nil
		}
		return []Action{ActionSelfSchedule}
	default:
		return nil
	}
}

// UserActions returns the actions available on one user entry. Recruiters
// may schedule any candidate, and may hire or reject only candidates whose
// application is not already in a terminal status. Applicants get nothing
// here regardless of what the payload contains.
func UserActions(user result.User, role session.Role) []Action {
	if role != session.RoleRecruiter {
		return nil
	}

	actions := []Action{ActionSchedule}
	if !terminalStatus(user.ApplicationStatus) {
		actions = append(actions, ActionHire, ActionReject)
	}

	return actions
}

// ApplicationActions returns the actions available on one application
// entry. Self-scheduling is offered only to the applicant, and only while
// the application sits in the invite-sent state.
func ApplicationActions(app result.Application, role session.Role) []Action {
	if role != session.RoleApplicant {
		return nil
	}

	if app.Status != StatusInviteSent {
		return nil
	}

	return []Action{ActionSelfSchedule}
}

// StatusForAction maps a decision action to the application status it
// requests. Unknown actions map to "" so callers cannot smuggle arbitrary
// status writes through the gate.
func StatusForAction(action Action) string {
	switch action {
	case ActionHire:
		return StatusHired
	case ActionReject:
		return StatusRejected
	default:
		return ""
	}
}

func terminalStatus(status string) bool {
	return status == StatusHired || status == StatusRejected
}
