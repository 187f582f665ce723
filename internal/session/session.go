package session

import "time"

// Role is the actor role assigned by the backend at registration time.
// The client gates recruiter-only actions on it, and every outbound
// request carries it so the backend can enforce authorization on its own.
type Role string

const (
	RoleApplicant Role = "Applicant"
	RoleRecruiter Role = "Recruiter"
)

// User identifies the logged-in account as returned by the /login endpoint.
type User struct {
	ID        int    `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Session is the single authenticated identity held by the client. It is
// valid only while now <= ExpiresAt; an expired session is equivalent to no
// session at all.
type Session struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// DisplayName returns the user's full name for prompts and greetings.
func (s *Session) DisplayName() string {
	if s.User.LastName == "" {
		return s.User.FirstName
	}
	return s.User.FirstName + " " + s.User.LastName
}
