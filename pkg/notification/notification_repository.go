package notification

import (
	"context"

	"foodbridge-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		Create(ctx context.Context, n *entities.Notification) error
		CreateMany(ctx context.Context, ns []*entities.Notification) error
		UpdateManyByRelatedEntity(ctx context.Context, relatedEntityID uuid.UUID, fromType string, patch map[string]interface{}) error
		GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error)
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) CreateMany(ctx context.Context, ns []*entities.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(ns).Error
}

func (r *notificationRepository) UpdateManyByRelatedEntity(ctx context.Context, relatedEntityID uuid.UUID, fromType string, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("related_entity_id = ? AND type = ?", relatedEntityID, fromType).
		Updates(patch).Error
}

func (r *notificationRepository) GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
