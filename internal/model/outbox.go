package model

import "time"

// Delivery channels for outbound messages.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
)

// OutboundMessage is a durably queued notification with a fire-at delay.
// Queued rows survive restarts and can be cancelled while pending; once
// dispatched they are marked sent exactly once, whether or not the gateway
// accepted them.
type OutboundMessage struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	ReminderID   string     `gorm:"index;not null" json:"reminderId"`
	OwnerID      string     `gorm:"index;not null" json:"ownerId"`
	Channel      string     `gorm:"not null" json:"channel"`
	Recipient    string     `gorm:"not null" json:"recipient"`
	TemplateName string     `json:"templateName"`
	Variables    []string   `gorm:"serializer:json" json:"variables"`
	FireAt       time.Time  `gorm:"index;not null" json:"fireAt"`
	SentAt       *time.Time `json:"sentAt"`
	CancelledAt  *time.Time `json:"cancelledAt"`
	LastError    string     `json:"lastError,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SweepState persists the due-check watermark: the instant the sweep has
// scanned through. A single row with ID 1 is kept.
type SweepState struct {
	ID        uint      `gorm:"primaryKey"`
	Watermark time.Time `gorm:"not null"`
	UpdatedAt time.Time
}
