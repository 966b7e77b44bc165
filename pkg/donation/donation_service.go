package donation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/utils/mailing"
	"foodbridge-backend/internal/utils/storage"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/organization"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

const listLimit = 100

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error)
		GetDonations(ctx context.Context, filter domain.DonationFilter, userID, role string) ([]*domain.Donation, error)
		GetDonationByID(ctx context.Context, id string) (*domain.Donation, error)
		AcceptDonation(ctx context.Context, donationID, userID string) (*domain.Donation, error)
		RejectDonation(ctx context.Context, donationID, userID string) (*domain.Donation, error)
		UpdateDonation(ctx context.Context, donationID string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error)
		CancelDonation(ctx context.Context, donationID, userID string) error
		GetDonationHistory(ctx context.Context, donationID string) ([]*domain.ActivityEntry, error)
		GetUserActivity(ctx context.Context, userID string, limit int) ([]*domain.ActivityEntry, error)
		GetMyDonations(ctx context.Context, userID, role string) ([]*domain.Donation, error)

		// ExpireStale is run by the background sweeper and before listings.
		ExpireStale(ctx context.Context) (int64, error)
	}

	donationService struct {
		donationRepository     DonationRepository
		userRepository         user.UserRepository
		organizationRepository organization.OrganizationRepository
		notificationRepository notification.NotificationRepository
		activityRepository     notification.ActivityLogRepository
		pointsService          points.PointsService
		effects                sideeffect.Dispatcher
		mailSender             mailing.Sender
		awsS3                  storage.AwsS3
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	userRepository user.UserRepository,
	organizationRepository organization.OrganizationRepository,
	notificationRepository notification.NotificationRepository,
	activityRepository notification.ActivityLogRepository,
	pointsService points.PointsService,
	effects sideeffect.Dispatcher,
	mailSender mailing.Sender,
	awsS3 storage.AwsS3,
) DonationService {
	return &donationService{
		donationRepository:     donationRepository,
		userRepository:         userRepository,
		organizationRepository: organizationRepository,
		notificationRepository: notificationRepository,
		activityRepository:     activityRepository,
		pointsService:          pointsService,
		effects:                effects,
		mailSender:             mailSender,
		awsS3:                  awsS3,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if !phonePattern.MatchString(req.ContactPhone) {
		return nil, domain.ErrInvalidContactPhone
	}

	prepDate, err := parseDate(req.PreparationDate)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	if !expiryDate.After(prepDate) {
		return nil, domain.ErrInvalidExpiryDate
	}
	if !expiryDate.After(time.Now()) {
		return nil, domain.ErrExpiryDateInPast
	}

	var orgUUID *uuid.UUID
	if req.OrganizationUUID != "" {
		parsed, err := uuid.Parse(req.OrganizationUUID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		org, err := s.organizationRepository.GetByID(ctx, req.OrganizationUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrOrganizationNotFound
			}
			return nil, err
		}
		if org.VerificationStatus != entities.VerificationApproved || !org.IsActive {
			return nil, domain.ErrOrganizationUnavailable
		}
		orgUUID = &parsed
	}

	donor, err := s.userRepository.GetUserByID(ctx, donorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	unit := req.Unit
	if unit == "" {
		unit = "PIECES"
	}

	donation := &entities.Donation{
		ID:                uuid.New(),
		DonorID:           donorUUID,
		OrganizationID:    orgUUID,
		FoodType:          req.FoodType,
		FoodCategory:      req.FoodCategory,
		Quantity:          req.Quantity,
		Unit:              unit,
		Description:       req.Description,
		PreparationDate:   prepDate,
		ExpiryDate:        expiryDate,
		StorageCondition:  req.StorageCondition,
		LocationLatitude:  req.Latitude,
		LocationLongitude: req.Longitude,
		Address:           req.Address,
		City:              req.City,
		ContactName:       req.ContactName,
		ContactPhone:      req.ContactPhone,
		ContactEmail:      req.ContactEmail,
		Status:            entities.DonationStatusAvailable,
		AvailabilityCount: req.Quantity,
	}

	if req.FoodImage != nil {
		filename := fmt.Sprintf("%s%s", donation.ID, filepath.Ext(req.FoodImage.Filename))
		key, err := s.awsS3.UploadFile(filename, req.FoodImage, "donations", storage.AllowImage...)
		if err != nil {
			return nil, err
		}
		donation.ImageURL = s.awsS3.GetPublicLinkKey(key)
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	// Best effort; a failed award never fails the donation itself.
	if err := s.pointsService.Award(ctx, donorID, domain.PointsDonation, entities.PointsTypeDonation,
		fmt.Sprintf("Points for donating %s", donation.FoodType),
		points.AwardRef{DonationID: &donation.ID}); err != nil {
		log.Errorf("award donation points for %s: %v", donorID, err)
	}

	s.recordActivity(donorUUID, donation.ID, entities.ActivityCreated,
		fmt.Sprintf("%s donated %d %s of %s", donor.FirstName, donation.Quantity, donation.Unit, donation.FoodType))
	s.notifyNGOsOfNewDonation(donation, donor)
	s.sendDonationMail(donor.Email, donor.FirstName, donation)

	donation.Donor = donor
	return toDomainDonation(donation, nil), nil
}

func (s *donationService) GetDonations(ctx context.Context, filter domain.DonationFilter, userID, role string) ([]*domain.Donation, error) {
	if _, err := s.donationRepository.ExpireStale(ctx); err != nil {
		log.Errorf("expire stale donations: %v", err)
	}

	status := filter.Status
	if status == "" {
		status = entities.DonationStatusAvailable
	}

	donations, err := s.donationRepository.ListDonations(ctx, status, filter.City, filter.FoodCategory, listLimit)
	if err != nil {
		return nil, err
	}

	// NGO users only see open donations plus those targeted at an
	// organization they own.
	var ownedOrgs map[string]bool
	if role == entities.RoleNGO {
		ids, err := s.organizationRepository.GetIDsByOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		ownedOrgs = make(map[string]bool, len(ids))
		for _, id := range ids {
			ownedOrgs[id] = true
		}
	}

	results := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		if ownedOrgs != nil && d.OrganizationID != nil && !ownedOrgs[d.OrganizationID.String()] {
			continue
		}
		// A donation this NGO user already turned down stays out of
		// their feed even though it is back in circulation.
		if role == entities.RoleNGO && d.AcceptedBy.Rejected &&
			d.AcceptedBy.UserID != nil && d.AcceptedBy.UserID.String() == userID {
			continue
		}
		if !matchesSearch(d, filter.Search) {
			continue
		}
		if filter.NGOName != "" {
			if d.Organization == nil || !strings.Contains(strings.ToLower(d.Organization.Name), strings.ToLower(filter.NGOName)) {
				continue
			}
		}

		var distance *float64
		if filter.Latitude != nil && filter.Longitude != nil {
			if d.LocationLatitude == nil || d.LocationLongitude == nil {
				continue
			}
			km := HaversineKm(*filter.Latitude, *filter.Longitude, *d.LocationLatitude, *d.LocationLongitude)
			if filter.RadiusKm > 0 && km > filter.RadiusKm {
				continue
			}
			distance = &km
		}

		results = append(results, toDomainDonation(d, distance))
	}
	return results, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (*domain.Donation, error) {
	if _, err := s.donationRepository.ExpireStale(ctx); err != nil {
		log.Errorf("expire stale donations: %v", err)
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return toDomainDonation(donation, nil), nil
}

func (s *donationService) AcceptDonation(ctx context.Context, donationID, userID string) (*domain.Donation, error) {
	if _, err := s.donationRepository.ExpireStale(ctx); err != nil {
		log.Errorf("expire stale donations: %v", err)
	}

	actor, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if actor.Role != entities.RoleNGO && actor.Role != entities.RoleVolunteer {
		return nil, domain.ErrUserNotAllowed
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	if donation.ExpiryDate.Before(time.Now()) {
		return nil, domain.ErrDonationExpired
	}
	if donation.Status != entities.DonationStatusAvailable {
		return nil, domain.ErrDonationNotAvailable
	}

	var orgID *uuid.UUID
	if actor.Role == entities.RoleNGO {
		if org, err := s.organizationRepository.GetByOwner(ctx, userID); err == nil {
			orgID = &org.ID
		}
	}

	// One conditional write closes the race between concurrent acceptors:
	// only the request that finds AVAILABLE wins. A direct accept takes the
	// whole donation, so it goes straight to ALLOCATED; ACCEPTED is the
	// partial-claim state reserved for pickup requests.
	affected, err := s.donationRepository.TransitionStatus(ctx, donationID, entities.DonationStatusAvailable, map[string]interface{}{
		"status":                      entities.DonationStatusAllocated,
		"accepted_by_user_id":         actor.ID,
		"accepted_by_name":            fullName(actor),
		"accepted_by_organization_id": orgID,
		"accepted_by_role":            actor.Role,
		"accepted_by_rejected":        false,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrDonationConflict
	}

	if orgID != nil {
		if _, err := s.organizationRepository.RecordDecision(ctx, orgID.String(), true); err != nil {
			log.Errorf("record acceptance for organization %s: %v", orgID, err)
		}
	}

	// Best effort, same as the award on creation.
	if err := s.pointsService.Award(ctx, userID, domain.PointsPickup, entities.PointsTypePickup,
		fmt.Sprintf("Points for accepting %s", donation.FoodType),
		points.AwardRef{DonationID: &donation.ID}); err != nil {
		log.Errorf("award acceptance points for %s: %v", userID, err)
	}

	s.recordActivity(actor.ID, donation.ID, entities.ActivityAccepted,
		fmt.Sprintf("%s accepted the donation", fullName(actor)))
	s.notifyUser(donation.DonorID, entities.NotificationDonationAccepted,
		"Donation accepted",
		fmt.Sprintf("%s accepted your donation of %s", fullName(actor), donation.FoodType),
		donation.ID, "Donation")
	s.markBroadcastRead(donation.ID)

	return s.GetDonationByID(ctx, donationID)
}

func (s *donationService) RejectDonation(ctx context.Context, donationID, userID string) (*domain.Donation, error) {
	if _, err := s.donationRepository.ExpireStale(ctx); err != nil {
		log.Errorf("expire stale donations: %v", err)
	}

	actor, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	// Open donations can be turned down by anyone eligible; a claimed or
	// allocated one only by the user who took it.
	claimed := donation.Status == entities.DonationStatusAccepted || donation.Status == entities.DonationStatusAllocated
	if donation.Status != entities.DonationStatusAvailable &&
		(!claimed || donation.AcceptedBy.UserID == nil || *donation.AcceptedBy.UserID != actor.ID) {
		return nil, domain.ErrUserNotAllowed
	}

	// Rejecting puts the donation back into circulation, flagged so the
	// listing can surface that an NGO already passed on it.
	affected, err := s.donationRepository.TransitionStatus(ctx, donationID, donation.Status, map[string]interface{}{
		"status":               entities.DonationStatusAvailable,
		"accepted_by_user_id":  actor.ID,
		"accepted_by_name":     fullName(actor),
		"accepted_by_role":     actor.Role,
		"accepted_by_rejected": true,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrDonationConflict
	}

	if actor.Role == entities.RoleNGO {
		if org, err := s.organizationRepository.GetByOwner(ctx, userID); err == nil {
			if _, err := s.organizationRepository.RecordDecision(ctx, org.ID.String(), false); err != nil {
				log.Errorf("record rejection for organization %s: %v", org.ID, err)
			}
		}
	}

	s.recordActivity(actor.ID, donation.ID, entities.ActivityRejected,
		fmt.Sprintf("%s passed on the donation", fullName(actor)))
	s.notifyRole(entities.RoleVolunteer, entities.NotificationDonationRejected,
		"Donation needs a volunteer",
		fmt.Sprintf("A donation of %s in %s is looking for pickup", donation.FoodType, donation.City),
		donation.ID, "Donation")

	return s.GetDonationByID(ctx, donationID)
}

func (s *donationService) UpdateDonation(ctx context.Context, donationID string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	if donation.DonorID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	if donation.Status != entities.DonationStatusAvailable {
		return nil, domain.ErrDonationNotAvailable
	}

	updates := map[string]interface{}{}
	setIf := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setIf("food_type", req.FoodType)
	setIf("food_category", req.FoodCategory)
	setIf("unit", req.Unit)
	setIf("description", req.Description)
	setIf("storage_condition", req.StorageCondition)
	setIf("address", req.Address)
	setIf("city", req.City)
	setIf("contact_name", req.ContactName)
	setIf("contact_email", req.ContactEmail)

	if req.ContactPhone != nil {
		if !phonePattern.MatchString(*req.ContactPhone) {
			return nil, domain.ErrInvalidContactPhone
		}
		updates["contact_phone"] = *req.ContactPhone
	}

	if req.FoodImage != nil {
		filename := fmt.Sprintf("%s%s", donation.ID, filepath.Ext(req.FoodImage.Filename))
		key, err := s.awsS3.UploadFile(filename, req.FoodImage, "donations", storage.AllowImage...)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = s.awsS3.GetPublicLinkKey(key)
	}

	if len(updates) > 0 {
		if err := s.donationRepository.UpdateFields(ctx, donationID, updates); err != nil {
			return nil, err
		}
	}
	return s.GetDonationByID(ctx, donationID)
}

func (s *donationService) CancelDonation(ctx context.Context, donationID, userID string) error {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}
	if donation.DonorID.String() != userID {
		return domain.ErrUnauthorizedDonationAccess
	}

	switch donation.Status {
	case entities.DonationStatusAvailable, entities.DonationStatusAccepted, entities.DonationStatusAllocated:
	default:
		return domain.ErrCancelNotAllowed
	}

	affected, err := s.donationRepository.TransitionStatus(ctx, donationID, donation.Status, map[string]interface{}{
		"status": entities.DonationStatusCancelled,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDonationConflict
	}

	s.recordActivity(donation.DonorID, donation.ID, entities.ActivityCancelled, "Donor cancelled the donation")
	if donation.AcceptedBy.UserID != nil && !donation.AcceptedBy.Rejected {
		s.notifyUser(*donation.AcceptedBy.UserID, entities.NotificationDonationRejected,
			"Donation cancelled",
			fmt.Sprintf("The donation of %s you accepted was cancelled by the donor", donation.FoodType),
			donation.ID, "Donation")
	}
	return nil
}

func (s *donationService) GetDonationHistory(ctx context.Context, donationID string) ([]*domain.ActivityEntry, error) {
	if _, err := s.donationRepository.GetDonationByID(ctx, donationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	entries, err := s.activityRepository.ListByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	return toActivityEntries(entries), nil
}

func (s *donationService) GetUserActivity(ctx context.Context, userID string, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.activityRepository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toActivityEntries(entries), nil
}

func (s *donationService) GetMyDonations(ctx context.Context, userID, role string) ([]*domain.Donation, error) {
	var (
		donations []*entities.Donation
		err       error
	)
	switch role {
	case entities.RoleNGO, entities.RoleVolunteer:
		donations, err = s.donationRepository.ListAcceptedBy(ctx, userID, role, []string{
			entities.DonationStatusAccepted,
			entities.DonationStatusAllocated,
			entities.DonationStatusPickedUp,
			entities.DonationStatusCompleted,
			entities.DonationStatusCancelled,
		})
	default:
		donations, err = s.donationRepository.ListByDonor(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		results = append(results, toDomainDonation(d, nil))
	}
	return results, nil
}

func (s *donationService) ExpireStale(ctx context.Context) (int64, error) {
	return s.donationRepository.ExpireStale(ctx)
}

func (s *donationService) recordActivity(userID, donationID uuid.UUID, action, description string) {
	s.effects.Dispatch("activity-log", func(ctx context.Context) error {
		return s.activityRepository.Create(ctx, &entities.ActivityLog{
			ID:          uuid.New(),
			UserID:      userID,
			DonationID:  donationID,
			Action:      action,
			Description: description,
		})
	})
}

func (s *donationService) notifyUser(userID uuid.UUID, notifType, title, message string, entityID uuid.UUID, entityType string) {
	s.effects.Dispatch("notify-user", func(ctx context.Context) error {
		related := entityID
		return s.notificationRepository.Create(ctx, &entities.Notification{
			ID:                uuid.New(),
			UserID:            userID,
			Type:              notifType,
			Title:             title,
			Message:           message,
			RelatedEntityID:   &related,
			RelatedEntityType: entityType,
		})
	})
}

func (s *donationService) notifyRole(role, notifType, title, message string, entityID uuid.UUID, entityType string) {
	s.effects.Dispatch("notify-role", func(ctx context.Context) error {
		users, err := s.userRepository.GetUserIDsByRole(ctx, role)
		if err != nil {
			return err
		}
		related := entityID
		batch := make([]*entities.Notification, 0, len(users))
		for _, u := range users {
			batch = append(batch, &entities.Notification{
				ID:                uuid.New(),
				UserID:            u.ID,
				Type:              notifType,
				Title:             title,
				Message:           message,
				RelatedEntityID:   &related,
				RelatedEntityType: entityType,
			})
		}
		return s.notificationRepository.CreateMany(ctx, batch)
	})
}

func (s *donationService) notifyNGOsOfNewDonation(donation *entities.Donation, donor *entities.User) {
	s.notifyRole(entities.RoleNGO, entities.NotificationDonationAvailable,
		"New donation available",
		fmt.Sprintf("%s donated %d %s of %s in %s", donor.FirstName, donation.Quantity, donation.Unit, donation.FoodType, donation.City),
		donation.ID, "Donation")
}

func (s *donationService) markBroadcastRead(donationID uuid.UUID) {
	s.effects.Dispatch("mark-broadcast-read", func(ctx context.Context) error {
		if err := s.notificationRepository.UpdateManyByRelatedEntity(ctx, donationID,
			entities.NotificationDonationAvailable, map[string]interface{}{"is_read": true}); err != nil {
			return err
		}
		// Older "needs a volunteer" broadcasts are stale once someone accepts.
		return s.notificationRepository.UpdateManyByRelatedEntity(ctx, donationID,
			entities.NotificationDonationRejected, map[string]interface{}{
				"type":    entities.NotificationDonationAccepted,
				"is_read": true,
			})
	})
}

func (s *donationService) sendDonationMail(email, firstName string, donation *entities.Donation) {
	if email == "" {
		return
	}
	s.effects.Dispatch("donation-mail", func(ctx context.Context) error {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your donation of <b>%d %s of %s</b> is now listed and visible to nearby organizations.</p><p>We will let you know as soon as someone picks it up.</p>",
			firstName, donation.Quantity, donation.Unit, donation.FoodType,
		)
		return s.mailSender.Send(email, "Your donation is live", mailing.Template("Thank you for donating!", body))
	})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func fullName(u *entities.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func matchesSearch(d *entities.Donation, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(d.FoodType), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle)
}

func toActivityEntries(entries []*entities.ActivityLog) []*domain.ActivityEntry {
	result := make([]*domain.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, &domain.ActivityEntry{
			ID:          e.ID.String(),
			UserID:      e.UserID.String(),
			DonationID:  e.DonationID.String(),
			Action:      e.Action,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	return result
}

// ToSummary converts a donation entity for embedding in other responses.
func ToSummary(d *entities.Donation) *domain.Donation {
	return toDomainDonation(d, nil)
}

func toDomainDonation(d *entities.Donation, distanceKm *float64) *domain.Donation {
	result := &domain.Donation{
		ID:                d.ID.String(),
		DonorID:           d.DonorID.String(),
		FoodType:          d.FoodType,
		FoodCategory:      d.FoodCategory,
		Quantity:          d.Quantity,
		Unit:              d.Unit,
		Description:       d.Description,
		PreparationDate:   d.PreparationDate,
		ExpiryDate:        d.ExpiryDate,
		StorageCondition:  d.StorageCondition,
		Latitude:          d.LocationLatitude,
		Longitude:         d.LocationLongitude,
		DistanceKm:        distanceKm,
		Address:           d.Address,
		City:              d.City,
		ContactName:       d.ContactName,
		ContactPhone:      d.ContactPhone,
		ContactEmail:      d.ContactEmail,
		ImageURL:          d.ImageURL,
		Status:            d.Status,
		AvailabilityCount: d.AvailabilityCount,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.OrganizationID != nil {
		result.OrganizationID = d.OrganizationID.String()
	}
	if d.Donor != nil {
		result.Donor = &domain.DonorSummary{
			ID:        d.Donor.ID.String(),
			FirstName: d.Donor.FirstName,
			LastName:  d.Donor.LastName,
			Phone:     d.Donor.Phone,
			Email:     d.Donor.Email,
		}
	}
	if d.Organization != nil {
		result.Organization = &domain.OrganizationBrief{
			ID:    d.Organization.ID.String(),
			Name:  d.Organization.Name,
			City:  d.Organization.City,
			State: d.Organization.State,
		}
	}
	if d.AcceptedBy.UserID != nil {
		summary := &domain.AcceptedBySummary{
			Name:     d.AcceptedBy.Name,
			Role:     d.AcceptedBy.Role,
			Rejected: d.AcceptedBy.Rejected,
			UserID:   d.AcceptedBy.UserID.String(),
		}
		if d.AcceptedBy.OrganizationID != nil {
			summary.OrganizationID = d.AcceptedBy.OrganizationID.String()
		}
		result.AcceptedBy = summary
	}
	return result
}
