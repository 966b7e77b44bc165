package organization

import (
	"context"
	"time"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	OrganizationRepository interface {
		Create(ctx context.Context, org *entities.Organization) error
		GetByID(ctx context.Context, id string) (*entities.Organization, error)
		GetByOwner(ctx context.Context, userID string) (*entities.Organization, error)
		GetIDsByOwner(ctx context.Context, userID string) ([]string, error)
		ListApprovedActive(ctx context.Context) ([]*entities.Organization, error)
		SetVerification(ctx context.Context, id string, status string, verifiedBy string) error

		// RecordDecision bumps the accept/decision counters in a single
		// statement, then recomputes the stored acceptance score from the
		// fresh counters.
		RecordDecision(ctx context.Context, id string, accepted bool) (*entities.Organization, error)

		CreateRating(ctx context.Context, rating *entities.OrganizationRating) error
		GetRatingByOrgAndUser(ctx context.Context, orgID, userID string) (*entities.OrganizationRating, error)
		ListRatings(ctx context.Context, orgID string) ([]*entities.OrganizationRating, error)
		RefreshStarAverage(ctx context.Context, orgID string) error
	}

	organizationRepository struct {
		db *gorm.DB
	}
)

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*entities.Organization, error) {
	var org entities.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetByOwner(ctx context.Context, userID string) (*entities.Organization, error) {
	var org entities.Organization
	if err := r.db.WithContext(ctx).Where("created_by_id = ?", userID).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetIDsByOwner(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Organization{}).
		Where("created_by_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *organizationRepository) ListApprovedActive(ctx context.Context) ([]*entities.Organization, error) {
	var orgs []*entities.Organization
	if err := r.db.WithContext(ctx).
		Where("verification_status = ? AND is_active = ?", entities.VerificationApproved, true).
		Order("name ASC").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) SetVerification(ctx context.Context, id string, status string, verifiedBy string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verification_status": status,
			"verified_by_id":      verifiedBy,
			"verified_date":       now,
		}).Error
}

func (r *organizationRepository) RecordDecision(ctx context.Context, id string, accepted bool) (*entities.Organization, error) {
	acceptedInc := 0
	if accepted {
		acceptedInc = 1
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"accepted_count": gorm.Expr("accepted_count + ?", acceptedInc),
			"decision_count": gorm.Expr("decision_count + ?", 1),
		}).Error; err != nil {
		return nil, err
	}

	org, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org.AcceptanceScore = Score(org.AcceptedCount, org.DecisionCount)
	if err := r.db.WithContext(ctx).
		Model(&entities.Organization{}).
		Where("id = ?", id).
		Update("acceptance_score", org.AcceptanceScore).Error; err != nil {
		return nil, err
	}

	return org, nil
}

func (r *organizationRepository) CreateRating(ctx context.Context, rating *entities.OrganizationRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *organizationRepository) GetRatingByOrgAndUser(ctx context.Context, orgID, userID string) (*entities.OrganizationRating, error) {
	var rating entities.OrganizationRating
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *organizationRepository) ListRatings(ctx context.Context, orgID string) ([]*entities.OrganizationRating, error) {
	var ratings []*entities.OrganizationRating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *organizationRepository) RefreshStarAverage(ctx context.Context, orgID string) error {
	var result struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.OrganizationRating{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("organization_id = ?", orgID).
		Scan(&result).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&entities.Organization{}).
		Where("id = ?", orgID).
		Updates(map[string]interface{}{
			"average_rating": result.Avg,
			"rating_count":   result.Count,
		}).Error
}
