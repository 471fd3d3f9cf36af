package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathakanu/mailmind/internal/model"
)

// SummarizationStore handles CRUD for saved email summaries.
type SummarizationStore struct {
	db *gorm.DB
}

func NewSummarizationStore(db *gorm.DB) *SummarizationStore {
	return &SummarizationStore{db: db}
}

func (s *SummarizationStore) Create(ctx context.Context, summarization *model.Summarization) error {
	if summarization.ID == "" {
		summarization.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(summarization).Error; err != nil {
		return fmt.Errorf("create summarization: %w", err)
	}
	return nil
}

// ListByOwner returns all of the owner's summarizations, newest first.
func (s *SummarizationStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Summarization, error) {
	var summaries []model.Summarization
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("list summarizations: %w", err)
	}
	return summaries, nil
}

// Update replaces the summary text, name, and tags of the owner's record.
func (s *SummarizationStore) Update(ctx context.Context, ownerID, id, summary, name string, tags []string) (*model.Summarization, error) {
	var record model.Summarization
	err := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find summarization: %w", err)
	}

	record.Summary = summary
	record.Name = name
	record.Tags = tags
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, fmt.Errorf("update summarization: %w", err)
	}
	return &record, nil
}

func (s *SummarizationStore) Delete(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&model.Summarization{})
	if result.Error != nil {
		return fmt.Errorf("delete summarization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
