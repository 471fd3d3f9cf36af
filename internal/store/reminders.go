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

// ReminderStore handles CRUD for reminders. Every operation with an id is
// scoped to the owner as well, so one user can never touch another's records.
type ReminderStore struct {
	db *gorm.DB
}

func NewReminderStore(db *gorm.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

func (s *ReminderStore) Create(ctx context.Context, reminder *model.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// ListByOwner returns all of the owner's reminders, newest first.
func (s *ReminderStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderStore) FindByID(ctx context.Context, ownerID, id string) (*model.Reminder, error) {
	var reminder model.Reminder
	err := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return &reminder, nil
}

// Save writes back a reminder previously loaded with FindByID.
func (s *ReminderStore) Save(ctx context.Context, reminder *model.Reminder) error {
	if err := s.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (s *ReminderStore) Delete(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&model.Reminder{})
	if result.Error != nil {
		return fmt.Errorf("delete reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DueBetween returns not-yet-completed reminders whose due time falls in
// (after, until]. The half-open interval pairs with the sweep watermark so a
// reminder is picked up by exactly one sweep.
func (s *ReminderStore) DueBetween(ctx context.Context, after, until time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := s.db.WithContext(ctx).
		Where("due_at > ? AND due_at <= ? AND is_completed = ?", after, until, false).
		Order("due_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	return reminders, nil
}

// MarkCompleted flips is_completed to true for a single reminder. The flag is
// never reverted automatically.
func (s *ReminderStore) MarkCompleted(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ?", id).
		Update("is_completed", true).Error; err != nil {
		return fmt.Errorf("mark reminder completed: %w", err)
	}
	return nil
}
