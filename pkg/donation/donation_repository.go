package donation

import (
	"context"
	"time"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		ListDonations(ctx context.Context, status, city, category string, limit int) ([]*entities.Donation, error)
		ListByDonor(ctx context.Context, donorID string) ([]*entities.Donation, error)
		ListAcceptedBy(ctx context.Context, userID, role string, statuses []string) ([]*entities.Donation, error)

		// TransitionStatus performs the status change as a single conditional
		// write. Zero rows affected means the donation was not in fromStatus
		// anymore; the caller maps that to a conflict.
		TransitionStatus(ctx context.Context, id string, fromStatus string, updates map[string]interface{}) (int64, error)

		// ClaimQuantity atomically decrements availability and flips the
		// donation to ACCEPTED, guarded on status and remaining quantity.
		ClaimQuantity(ctx context.Context, id string, quantity int, snapshot entities.AcceptedBy) (int64, error)
		RestoreQuantity(ctx context.Context, id string, quantity int) error

		UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error

		// ExpireStale flips every AVAILABLE donation past its expiry date to
		// EXPIRED. Conditional bulk update, idempotent by construction.
		ExpireStale(ctx context.Context) (int64, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Organization").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) ListDonations(ctx context.Context, status, city, category string, limit int) ([]*entities.Donation, error) {
	query := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Organization")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if category != "" {
		query = query.Where("food_category = ?", category)
	}

	var donations []*entities.Donation
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) ListAcceptedBy(ctx context.Context, userID, role string, statuses []string) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Organization").
		Where("accepted_by_user_id = ? AND accepted_by_role = ? AND status IN ?", userID, role, statuses).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) TransitionStatus(ctx context.Context, id string, fromStatus string, updates map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *donationRepository) ClaimQuantity(ctx context.Context, id string, quantity int, snapshot entities.AcceptedBy) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ? AND availability_count >= ?", id, entities.DonationStatusAvailable, quantity).
		Updates(map[string]interface{}{
			"availability_count":          gorm.Expr("availability_count - ?", quantity),
			"status":                      entities.DonationStatusAccepted,
			"accepted_by_user_id":         snapshot.UserID,
			"accepted_by_name":            snapshot.Name,
			"accepted_by_organization_id": snapshot.OrganizationID,
			"accepted_by_role":            snapshot.Role,
			"accepted_by_rejected":        false,
		})
	return res.RowsAffected, res.Error
}

func (r *donationRepository) RestoreQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"availability_count": gorm.Expr("availability_count + ?", quantity),
			"status":             entities.DonationStatusAvailable,
		}).Error
}

func (r *donationRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *donationRepository) ExpireStale(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ? AND expiry_date < ?", entities.DonationStatusAvailable, time.Now()).
		Update("status", entities.DonationStatusExpired)
	return res.RowsAffected, res.Error
}
