package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/pathakanu/mailmind/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// CreateReminderRequest is the body for POST /reminders.
type CreateReminderRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Priority    string   `json:"priority"`
	Keywords    []string `json:"keywords"`
}

// Validate checks required fields and normalises the priority.
func (r *CreateReminderRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Date == "" || r.Time == "" {
		return fmt.Errorf("date and time are required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return fmt.Errorf("time must be HH:MM")
	}
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(r.Priority) {
		return fmt.Errorf("priority must be High, Medium, or Low")
	}
	return nil
}

// UpdateReminderRequest is the body for PUT /reminders/:id. Nil fields are
// left unchanged.
type UpdateReminderRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Priority    *string   `json:"priority"`
	Keywords    *[]string `json:"keywords"`
	IsCompleted *bool     `json:"isCompleted"`
}

// Validate checks whichever fields are present.
func (r *UpdateReminderRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title cannot be blank")
	}
	if r.Date != nil {
		if _, err := time.Parse("2006-01-02", *r.Date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD")
		}
	}
	if r.Time != nil {
		if _, err := time.Parse("15:04", *r.Time); err != nil {
			return fmt.Errorf("time must be HH:MM")
		}
	}
	if r.Priority != nil && !model.ValidPriority(*r.Priority) {
		return fmt.Errorf("priority must be High, Medium, or Low")
	}
	return nil
}

// CreateSummarizationRequest is the body for POST /summarizations.
type CreateSummarizationRequest struct {
	Summary string `json:"summary"`
	Name    string `json:"name"`
}

func (r *CreateSummarizationRequest) Validate() error {
	if len(r.Summary) < model.MinSummaryLength {
		return fmt.Errorf("summary must be at least %d characters", model.MinSummaryLength)
	}
	return nil
}

// UpdateSummarizationRequest is the body for PATCH /summarizations/:id.
type UpdateSummarizationRequest struct {
	Summary string   `json:"summary"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
}

func (r *UpdateSummarizationRequest) Validate() error {
	if len(r.Summary) < model.MinSummaryLength {
		return fmt.Errorf("summary must be at least %d characters", model.MinSummaryLength)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// SummarizeRequest is the body for POST /summarize.
type SummarizeRequest struct {
	EmailBody string `json:"emailBody"`
}

// SummarizeResponse carries the concatenated AI summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// TriggerResponse reports a sweep run.
type TriggerResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// UserDetailsRequest is the body for POST /user-details.
type UserDetailsRequest struct {
	OwnerID             string `json:"ownerId"`
	Name                string `json:"name"`
	Occupation          string `json:"occupation"`
	AllowBrowserAlerts  bool   `json:"allowBrowserAlerts"`
	AllowWhatsappAlerts bool   `json:"allowWhatsappAlerts"`
	WhatsappNumber      string `json:"whatsappNumber"`
	AllowTextAlerts     bool   `json:"allowTextAlerts"`
	PhoneNumber         string `json:"phoneNumber"`
}
