package pickup

import (
	"context"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	PickupRepository interface {
		CreatePickupRequest(ctx context.Context, request *entities.PickupRequest) error
		GetPickupRequestByID(ctx context.Context, id string) (*entities.PickupRequest, error)
		ListByReceiver(ctx context.Context, receiverID, status string) ([]*entities.PickupRequest, error)
		ListByDonor(ctx context.Context, donorID, status string) ([]*entities.PickupRequest, error)

		// TransitionStatus changes the request status only when it still holds
		// fromStatus. Zero rows affected signals a lost race.
		TransitionStatus(ctx context.Context, id string, fromStatus string, updates map[string]interface{}) (int64, error)
	}

	pickupRepository struct {
		db *gorm.DB
	}
)

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) CreatePickupRequest(ctx context.Context, request *entities.PickupRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *pickupRepository) GetPickupRequestByID(ctx context.Context, id string) (*entities.PickupRequest, error) {
	var request entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Preload("Receiver").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *pickupRepository) ListByReceiver(ctx context.Context, receiverID, status string) ([]*entities.PickupRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Where("receiver_id = ?", receiverID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*entities.PickupRequest
	if err := query.
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *pickupRepository) ListByDonor(ctx context.Context, donorID, status string) ([]*entities.PickupRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Receiver").
		Joins("JOIN donations ON donations.id = pickup_requests.donation_id").
		Where("donations.donor_id = ?", donorID)
	if status != "" {
		query = query.Where("pickup_requests.status = ?", status)
	}

	var requests []*entities.PickupRequest
	if err := query.
		Order("pickup_requests.created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *pickupRepository) TransitionStatus(ctx context.Context, id string, fromStatus string, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}
