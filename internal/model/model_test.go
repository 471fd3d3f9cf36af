package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTags(t *testing.T) {
	t.Parallel()

	t.Run("caps at five and preserves order", func(t *testing.T) {
		in := []string{"one", "two", "three", "four", "five", "six", "seven"}
		assert.Equal(t, []string{"one", "two", "three", "four", "five"}, SanitizeTags(in))
	})

	t.Run("drops blanks and trims", func(t *testing.T) {
		in := []string{"  work ", "", "   ", "urgent", "work"}
		assert.Equal(t, []string{"work", "urgent", "work"}, SanitizeTags(in))
	})

	t.Run("blanks do not count toward the cap", func(t *testing.T) {
		in := []string{"", "a", "", "b", "", "c", "", "d", "", "e", "f"}
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, SanitizeTags(in))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SanitizeTags(nil))
	})
}

func TestParseDueAt(t *testing.T) {
	t.Parallel()

	due, err := ParseDueAt("2025-03-01", "09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), due)

	_, err = ParseDueAt("03/01/2025", "09:00", time.UTC)
	assert.Error(t, err)

	_, err = ParseDueAt("2025-03-01", "9am", time.UTC)
	assert.Error(t, err)
}

func TestValidPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPriority(PriorityHigh))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityLow))
	assert.False(t, ValidPriority("urgent"))
	assert.False(t, ValidPriority(""))
}
