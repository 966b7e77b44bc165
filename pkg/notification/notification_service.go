package notification

import (
	"context"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
)

type (
	NotificationService interface {
		GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error)
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{notificationRepository: notificationRepository}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, toDomainNotification(n))
	}
	return result, count, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

func toDomainNotification(n *entities.Notification) *domain.Notification {
	result := &domain.Notification{
		ID:                n.ID.String(),
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		RelatedEntityType: n.RelatedEntityType,
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
	}
	if n.RelatedEntityID != nil {
		result.RelatedEntityID = n.RelatedEntityID.String()
	}
	return result
}
