package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerAtMostOncePerSession(t *testing.T) {
	t.Parallel()
	tracker := NewTracker()

	assert.True(t, tracker.MarkAlerted("session-1", "rem-1"))
	assert.False(t, tracker.MarkAlerted("session-1", "rem-1"))
	assert.True(t, tracker.Alerted("session-1", "rem-1"))

	// Different session (e.g. a page reload) notifies again.
	assert.True(t, tracker.MarkAlerted("session-2", "rem-1"))

	// Different reminder in the same session is independent.
	assert.True(t, tracker.MarkAlerted("session-1", "rem-2"))
}

func TestTrackerForget(t *testing.T) {
	t.Parallel()
	tracker := NewTracker()

	tracker.MarkAlerted("session-1", "rem-1")
	tracker.Forget("session-1")
	assert.False(t, tracker.Alerted("session-1", "rem-1"))
	assert.True(t, tracker.MarkAlerted("session-1", "rem-1"))
}
