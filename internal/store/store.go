// Package store provides owner-scoped persistence for reminders,
// summarizations, user details, and the outbound message queue.
package store

import "errors"

// ErrNotFound is returned when no record matches an id, or the record belongs
// to a different owner than the caller.
var ErrNotFound = errors.New("record not found")
