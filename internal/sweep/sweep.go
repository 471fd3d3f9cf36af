// Package sweep implements the reminder due-check process. Each run scans
// reminders whose due time falls between the persisted watermark and now,
// marks them completed, and enqueues delayed outbound messages for owners who
// opted into WhatsApp or text alerts.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pathakanu/mailmind/internal/model"
	"github.com/pathakanu/mailmind/internal/store"
)

// initialLookback bounds the very first sweep so boot does not fire the
// entire historical backlog.
const initialLookback = 2 * time.Minute

// Sweeper runs the due-check over the reminder store.
type Sweeper struct {
	reminders   *store.ReminderStore
	userDetails *store.UserDetailsStore
	outbox      *store.OutboxStore
	template    string
	sendDelay   time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func New(reminders *store.ReminderStore, userDetails *store.UserDetailsStore, outbox *store.OutboxStore, template string, sendDelay time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		reminders:   reminders,
		userDetails: userDetails,
		outbox:      outbox,
		template:    template,
		sendDelay:   sendDelay,
		logger:      logger,
		now:         time.Now,
	}
}

// WithNow overrides the clock. Used by tests.
func (s *Sweeper) WithNow(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run executes one sweep and returns how many reminders came due. Messaging
// failures never block completion flagging: a reminder is marked completed
// before its messages are enqueued, and enqueue errors are only logged.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	now := s.now()

	watermark, err := s.outbox.Watermark(ctx)
	if err != nil {
		return 0, err
	}
	if watermark.IsZero() || now.Sub(watermark) > 24*time.Hour {
		watermark = now.Add(-initialLookback)
	}

	due, err := s.reminders.DueBetween(ctx, watermark, now)
	if err != nil {
		return 0, err
	}

	for _, reminder := range due {
		if err := s.reminders.MarkCompleted(ctx, reminder.ID); err != nil {
			s.logger.Error("sweep: mark completed", zap.String("reminder", reminder.ID), zap.Error(err))
			continue
		}
		s.enqueueAlerts(ctx, reminder, now)
	}

	if err := s.outbox.SetWatermark(ctx, now); err != nil {
		return len(due), fmt.Errorf("advance watermark: %w", err)
	}
	return len(due), nil
}

func (s *Sweeper) enqueueAlerts(ctx context.Context, reminder model.Reminder, now time.Time) {
	details, err := s.userDetails.Find(ctx, reminder.OwnerID)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("sweep: load user details", zap.String("owner", reminder.OwnerID), zap.Error(err))
		return
	}

	variables := []string{
		reminder.Title,
		reminder.Description,
		reminder.Date + " " + reminder.Time,
	}
	fireAt := now.Add(s.sendDelay)

	if details.AllowWhatsappAlerts && strings.TrimSpace(details.WhatsappNumber) != "" {
		msg := &model.OutboundMessage{
			ReminderID:   reminder.ID,
			OwnerID:      reminder.OwnerID,
			Channel:      model.ChannelWhatsApp,
			Recipient:    strings.TrimPrefix(strings.TrimSpace(details.WhatsappNumber), "+"),
			TemplateName: s.template,
			Variables:    variables,
			FireAt:       fireAt,
		}
		if err := s.outbox.Enqueue(ctx, msg); err != nil {
			s.logger.Error("sweep: enqueue whatsapp alert", zap.String("reminder", reminder.ID), zap.Error(err))
		}
	}

	if details.AllowTextAlerts && strings.TrimSpace(details.PhoneNumber) != "" {
		msg := &model.OutboundMessage{
			ReminderID: reminder.ID,
			OwnerID:    reminder.OwnerID,
			Channel:    model.ChannelSMS,
			Recipient:  strings.TrimSpace(details.PhoneNumber),
			Variables:  variables,
			FireAt:     fireAt,
		}
		if err := s.outbox.Enqueue(ctx, msg); err != nil {
			s.logger.Error("sweep: enqueue sms alert", zap.String("reminder", reminder.ID), zap.Error(err))
		}
	}
}
