package notification

import (
	"context"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	ActivityLogRepository interface {
		Create(ctx context.Context, entry *entities.ActivityLog) error
		ListByDonation(ctx context.Context, donationID string) ([]*entities.ActivityLog, error)
		ListByUser(ctx context.Context, userID string, limit int) ([]*entities.ActivityLog, error)
	}

	activityLogRepository struct {
		db *gorm.DB
	}
)

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *entities.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) ListByDonation(ctx context.Context, donationID string) ([]*entities.ActivityLog, error) {
	var entries []*entities.ActivityLog
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("donation_id = ?", donationID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *activityLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.ActivityLog, error) {
	var entries []*entities.ActivityLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
