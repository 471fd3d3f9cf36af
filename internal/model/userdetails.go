package model

import "time"

// UserDetails holds per-owner profile and alert preferences. At most one
// record exists per owner identifier (upsert semantics).
type UserDetails struct {
	OwnerID             string    `gorm:"primaryKey" json:"ownerId"`
	Name                string    `json:"name"`
	Occupation          string    `json:"occupation"`
	AllowBrowserAlerts  bool      `json:"allowBrowserAlerts"`
	AllowWhatsappAlerts bool      `json:"allowWhatsappAlerts"`
	WhatsappNumber      string    `json:"whatsappNumber"`
	AllowTextAlerts     bool      `json:"allowTextAlerts"`
	PhoneNumber         string    `json:"phoneNumber"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
