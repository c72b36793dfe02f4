package session

import "fmt"

// Manager performs the auth transitions on a session. Login accepts any
// non-empty identifier: format validation is a UI concern, and the flag is
// a trust-on-input convenience, not a security boundary.
type Manager struct {
	saver *Saver
	clock Clock
}

// NewManager creates a manager. nil clock defaults to the system clock.
func NewManager(saver *Saver, clock Clock) *Manager {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Manager{saver: saver, clock: clock}
}

// Login marks the session authenticated under the given identifier and
// appends a login history record.
func (m *Manager) Login(s *Session, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("login: identifier must not be empty")
	}
	s.Authenticated = true
	s.DisplayName = identifier
	s.History = append(s.History, HistoryEntry{At: m.clock.Now(), Action: ActionLogin})
	m.saver.Save(s)
	return nil
}

// Logout clears the auth flag and display name and appends a logout record.
// Cart and favorites survive logout on purpose: a returning user keeps
// their selections.
func (m *Manager) Logout(s *Session) {
	s.Authenticated = false
	s.DisplayName = ""
	s.History = append(s.History, HistoryEntry{At: m.clock.Now(), Action: ActionLogout})
	m.saver.Save(s)
}
