// Package notify tracks which reminders a browser session has already been
// alerted about, so the client polling loop raises each notification at most
// once per session. State is in-memory only; a page reload (new session id)
// or a process restart re-notifies still-due reminders.
package notify

import "sync"

// Tracker records alerted reminder ids per client session.
type Tracker struct {
	mu       sync.RWMutex
	sessions map[string]map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]map[string]struct{}),
	}
}

// MarkAlerted records that the session has been alerted for the reminder.
// It returns false when the reminder was already recorded for that session.
func (t *Tracker) MarkAlerted(sessionID, reminderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen, ok := t.sessions[sessionID]
	if !ok {
		seen = make(map[string]struct{})
		t.sessions[sessionID] = seen
	}
	if _, dup := seen[reminderID]; dup {
		return false
	}
	seen[reminderID] = struct{}{}
	return true
}

// Alerted reports whether the session was already alerted for the reminder.
func (t *Tracker) Alerted(sessionID, reminderID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.sessions[sessionID][reminderID]
	return ok
}

// Forget drops all state for a session.
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sessionID)
}
