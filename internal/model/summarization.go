package model

import (
	"strings"
	"time"
)

// MinSummaryLength is the shortest summary accepted at create and update time.
const MinSummaryLength = 10

// MaxTags caps how many tags a summarization may carry.
const MaxTags = 5

// Summarization is a saved AI-generated email summary. Names are unique per
// owner, not globally.
type Summarization struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OwnerID   string    `gorm:"uniqueIndex:idx_owner_name;not null" json:"ownerId"`
	Name      string    `gorm:"uniqueIndex:idx_owner_name;not null" json:"name"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	Tags      []string  `gorm:"serializer:json" json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SanitizeTags trims entries, drops blanks, and keeps the first MaxTags in
// order. Duplicate values are allowed.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, MaxTags)
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
