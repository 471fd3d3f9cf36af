package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pathakanu/mailmind/internal/model"
)

// UserDetailsStore keeps at most one profile record per owner.
type UserDetailsStore struct {
	db *gorm.DB
}

func NewUserDetailsStore(db *gorm.DB) *UserDetailsStore {
	return &UserDetailsStore{db: db}
}

func (s *UserDetailsStore) Find(ctx context.Context, ownerID string) (*model.UserDetails, error) {
	var details model.UserDetails
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user details: %w", err)
	}
	return &details, nil
}

// Upsert creates the owner's record or merges the given fields into the
// existing one.
func (s *UserDetailsStore) Upsert(ctx context.Context, details *model.UserDetails) (*model.UserDetails, error) {
	db := s.db.WithContext(ctx)

	var existing model.UserDetails
	err := db.Where("owner_id = ?", details.OwnerID).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":                  details.Name,
			"occupation":            details.Occupation,
			"allow_browser_alerts":  details.AllowBrowserAlerts,
			"allow_whatsapp_alerts": details.AllowWhatsappAlerts,
			"whatsapp_number":       details.WhatsappNumber,
			"allow_text_alerts":     details.AllowTextAlerts,
			"phone_number":          details.PhoneNumber,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user details: %w", err)
		}
		return s.Find(ctx, details.OwnerID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(details).Error; err != nil {
			return nil, fmt.Errorf("create user details: %w", err)
		}
		return details, nil
	default:
		return nil, fmt.Errorf("find user details: %w", err)
	}
}
