package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// persistedState is the on-disk shape of the store: the session record and
// the theme preference share one file.
type persistedState struct {
	Session *Session `json:"session,omitempty"`
	Theme   string   `json:"theme,omitempty"`
}

// Store owns the persisted client state. It is read by every guarded
// command but written only on login, logout and expiry cleanup, so no
// concurrent writers exist.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Current returns the active session, or nil when none exists. A session
// past its expiry is cleared from disk and reported as absent; expired
// sessions are never silently kept.
func (s *Store) Current() *Session {
	state, err := s.load()
	if err != nil || state.Session == nil {
		return nil
	}

	if state.Session.Expired(s.now()) {
		_ = s.Clear()
		return nil
	}

	return state.Session
}

// Role returns the role of the active session, or "" when no valid session
// exists.
func (s *Store) Role() Role {
	sess := s.Current()
	if sess == nil {
		return ""
	}
	return sess.User.Role
}

// Save persists the session, keeping the stored theme preference intact.
func (s *Store) Save(sess *Session) error {
	state, _ := s.load()
	state.Session = sess
	return s.write(state)
}

// Clear removes the persisted session. The theme preference survives a
// logout.
func (s *Store) Clear() error {
	state, err := s.load()
	if err != nil || state.Session == nil {
		return nil
	}
	state.Session = nil
	return s.write(state)
}

// Theme returns the persisted theme preference, or "" when unset.
func (s *Store) Theme() string {
	state, _ := s.load()
	return state.Theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) error {
	state, _ := s.load()
	state.Theme = theme
	return s.write(state)
}

func (s *Store) load() (persistedState, error) {
	var state persistedState

	data, err := os.ReadFile(s.path)
	if err != nil {
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		// An unreadable state file is treated as absent rather than fatal.
		return persistedState{}, err
	}

	return state, nil
}

func (s *Store) write(state persistedState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}
