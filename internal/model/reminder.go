package model

import (
	"fmt"
	"time"
)

// Priority levels accepted for a reminder.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Reminder is a user-scheduled alert persisted until the owner deletes it.
// Date and Time keep the client-facing string forms; DueAt is derived from
// them in the service timezone and drives the due-check sweep.
type Reminder struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index;not null" json:"ownerId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        string    `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"size:5;not null" json:"time"`  // HH:MM
	DueAt       time.Time `gorm:"index" json:"dueAt"`
	Priority    string    `gorm:"default:'Medium'" json:"priority"`
	Keywords    []string  `gorm:"serializer:json" json:"keywords"`
	IsCompleted bool      `gorm:"default:false;index" json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidPriority reports whether p is one of the accepted priority labels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParseDueAt combines a YYYY-MM-DD date and HH:MM time into a timestamp in loc.
func ParseDueAt(date, clock string, loc *time.Location) (time.Time, error) {
	due, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return due, nil
}
