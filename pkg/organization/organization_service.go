package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	OrganizationService interface {
		CreateOrganization(ctx context.Context, req domain.CreateOrganizationRequest, userID string) (*domain.Organization, error)
		GetOrganizations(ctx context.Context) ([]*domain.Organization, error)
		GetOrganizationByID(ctx context.Context, id string) (*domain.Organization, error)
		VerifyOrganization(ctx context.Context, id string, req domain.VerifyOrganizationRequest, adminID string) error
		RateOrganization(ctx context.Context, id string, req domain.RateOrganizationRequest, userID string) (*domain.OrganizationRating, error)
		GetOrganizationRatings(ctx context.Context, id string) ([]*domain.OrganizationRating, error)
	}

	organizationService struct {
		organizationRepository OrganizationRepository
		userRepository         user.UserRepository
		notificationRepository notification.NotificationRepository
		effects                sideeffect.Dispatcher
	}
)

func NewOrganizationService(
	organizationRepository OrganizationRepository,
	userRepository user.UserRepository,
	notificationRepository notification.NotificationRepository,
	effects sideeffect.Dispatcher,
) OrganizationService {
	return &organizationService{
		organizationRepository: organizationRepository,
		userRepository:         userRepository,
		notificationRepository: notificationRepository,
		effects:                effects,
	}
}

func (s *organizationService) CreateOrganization(ctx context.Context, req domain.CreateOrganizationRequest, userID string) (*domain.Organization, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	org := &entities.Organization{
		ID:                 uuid.New(),
		Name:               req.Name,
		OrganizationType:   req.OrganizationType,
		Description:        req.Description,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		Email:              req.Email,
		Phone:              req.Phone,
		LocationLatitude:   req.Latitude,
		LocationLongitude:  req.Longitude,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		VerificationStatus: entities.VerificationPending,
		IsActive:           true,
		CreatedByID:        userUUID,
	}

	if err := s.organizationRepository.Create(ctx, org); err != nil {
		return nil, err
	}

	return toDomainOrganization(org), nil
}

func (s *organizationService) GetOrganizations(ctx context.Context) ([]*domain.Organization, error) {
	orgs, err := s.organizationRepository.ListApprovedActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Organization, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, toDomainOrganization(org))
	}
	return result, nil
}

func (s *organizationService) GetOrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	org, err := s.organizationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return toDomainOrganization(org), nil
}

func (s *organizationService) VerifyOrganization(ctx context.Context, id string, req domain.VerifyOrganizationRequest, adminID string) error {
	org, err := s.organizationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrganizationNotFound
		}
		return err
	}

	if req.VerificationStatus != entities.VerificationApproved && req.VerificationStatus != entities.VerificationRejected {
		return domain.ErrInvalidVerificationState
	}

	if err := s.organizationRepository.SetVerification(ctx, id, req.VerificationStatus, adminID); err != nil {
		return err
	}

	notifType := entities.NotificationOrganizationApproved
	title := "Organization Approved"
	message := fmt.Sprintf("Your organization %q has been approved.", org.Name)
	if req.VerificationStatus == entities.VerificationRejected {
		notifType = entities.NotificationOrganizationRejected
		title = "Organization Rejected"
		message = fmt.Sprintf("Your organization %q was rejected during verification.", org.Name)
	}

	orgID := org.ID
	ownerID := org.CreatedByID
	s.effects.Dispatch("organization.verify.notify", func(ctx context.Context) error {
		return s.notificationRepository.Create(ctx, &entities.Notification{
			ID:                uuid.New(),
			UserID:            ownerID,
			Type:              notifType,
			Title:             title,
			Message:           message,
			RelatedEntityID:   &orgID,
			RelatedEntityType: "Organization",
		})
	})

	return nil
}

func (s *organizationService) RateOrganization(ctx context.Context, id string, req domain.RateOrganizationRequest, userID string) (*domain.OrganizationRating, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	org, err := s.organizationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if existing, err := s.organizationRepository.GetRatingByOrgAndUser(ctx, id, userID); err == nil && existing != nil {
		return nil, domain.ErrAlreadyRated
	}

	rating := &entities.OrganizationRating{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		UserID:         userUUID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	if err := s.organizationRepository.CreateRating(ctx, rating); err != nil {
		return nil, err
	}

	if err := s.organizationRepository.RefreshStarAverage(ctx, id); err != nil {
		return nil, err
	}

	raterName := ""
	if rater, err := s.userRepository.GetUserByID(ctx, userID); err == nil {
		raterName = strings.TrimSpace(rater.FirstName + " " + rater.LastName)
	}

	orgID := org.ID
	ownerID := org.CreatedByID
	s.effects.Dispatch("organization.rate.notify", func(ctx context.Context) error {
		return s.notificationRepository.Create(ctx, &entities.Notification{
			ID:                uuid.New(),
			UserID:            ownerID,
			Type:              entities.NotificationRatingReceived,
			Title:             "New Rating",
			Message:           fmt.Sprintf("%s rated %q %d/5", raterName, org.Name, req.Rating),
			RelatedEntityID:   &orgID,
			RelatedEntityType: "Organization",
		})
	})

	return &domain.OrganizationRating{
		ID:        rating.ID.String(),
		UserID:    userID,
		UserName:  raterName,
		Rating:    rating.Rating,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}, nil
}

func (s *organizationService) GetOrganizationRatings(ctx context.Context, id string) ([]*domain.OrganizationRating, error) {
	ratings, err := s.organizationRepository.ListRatings(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.OrganizationRating, 0, len(ratings))
	for _, rating := range ratings {
		entry := &domain.OrganizationRating{
			ID:        rating.ID.String(),
			UserID:    rating.UserID.String(),
			Rating:    rating.Rating,
			Comment:   rating.Comment,
			CreatedAt: rating.CreatedAt,
		}
		if rating.User != nil {
			entry.UserName = strings.TrimSpace(rating.User.FirstName + " " + rating.User.LastName)
		}
		result = append(result, entry)
	}
	return result, nil
}

// toDomainOrganization keeps the acceptance-derived score and the
// user-submitted star average as distinct fields; DisplayRating is the
// display-level merge of the two.
func toDomainOrganization(org *entities.Organization) *domain.Organization {
	display := org.AcceptanceScore
	if org.RatingCount > 0 {
		display = org.AverageRating
	}
	return &domain.Organization{
		ID:                 org.ID.String(),
		Name:               org.Name,
		OrganizationType:   org.OrganizationType,
		Description:        org.Description,
		Email:              org.Email,
		Phone:              org.Phone,
		Address:            org.Address,
		City:               org.City,
		State:              org.State,
		VerificationStatus: org.VerificationStatus,
		IsActive:           org.IsActive,
		AverageRating:      org.AverageRating,
		RatingCount:        org.RatingCount,
		AcceptedCount:      org.AcceptedCount,
		DecisionCount:      org.DecisionCount,
		AcceptanceScore:    org.AcceptanceScore,
		DisplayRating:      display,
		CreatedAt:          org.CreatedAt,
	}
}
