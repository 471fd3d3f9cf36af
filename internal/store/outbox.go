package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathakanu/mailmind/internal/model"
)

// OutboxStore persists delayed outbound messages and the sweep watermark.
type OutboxStore struct {
	db *gorm.DB
}

func NewOutboxStore(db *gorm.DB) *OutboxStore {
	return &OutboxStore{db: db}
}

func (s *OutboxStore) Enqueue(ctx context.Context, msg *model.OutboundMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("enqueue outbound message: %w", err)
	}
	return nil
}

// DueMessages returns unsent, uncancelled messages whose fire-at time has
// passed, oldest first.
func (s *OutboxStore) DueMessages(ctx context.Context, now time.Time) ([]model.OutboundMessage, error) {
	var messages []model.OutboundMessage
	if err := s.db.WithContext(ctx).
		Where("fire_at <= ? AND sent_at IS NULL AND cancelled_at IS NULL", now).
		Order("fire_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("due outbound messages: %w", err)
	}
	return messages, nil
}

// MarkSent records the dispatch attempt. sendErr may be empty; either way the
// message is never picked up again.
func (s *OutboxStore) MarkSent(ctx context.Context, id string, sentAt time.Time, sendErr string) error {
	if err := s.db.WithContext(ctx).Model(&model.OutboundMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent_at": sentAt, "last_error": sendErr}).Error; err != nil {
		return fmt.Errorf("mark outbound message sent: %w", err)
	}
	return nil
}

// CancelByReminder cancels every still-pending message queued for a reminder.
// Called when the owning reminder is deleted.
func (s *OutboxStore) CancelByReminder(ctx context.Context, reminderID string, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.OutboundMessage{}).
		Where("reminder_id = ? AND sent_at IS NULL AND cancelled_at IS NULL", reminderID).
		Update("cancelled_at", now)
	if result.Error != nil {
		return 0, fmt.Errorf("cancel outbound messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Watermark returns the persisted sweep watermark, or the zero time when no
// sweep has run yet.
func (s *OutboxStore) Watermark(ctx context.Context) (time.Time, error) {
	var state model.SweepState
	err := s.db.WithContext(ctx).First(&state, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load sweep watermark: %w", err)
	}
	return state.Watermark, nil
}

// SetWatermark advances the persisted sweep watermark.
func (s *OutboxStore) SetWatermark(ctx context.Context, watermark time.Time) error {
	state := model.SweepState{ID: 1, Watermark: watermark}
	if err := s.db.WithContext(ctx).Save(&state).Error; err != nil {
		return fmt.Errorf("save sweep watermark: %w", err)
	}
	return nil
}
