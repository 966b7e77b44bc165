package pickup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/utils/mailing"
	"foodbridge-backend/pkg/donation"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/organization"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PickupService interface {
		CreatePickupRequest(ctx context.Context, req domain.CreatePickupRequest, receiverID string) (*domain.PickupRequest, error)
		GetPickupRequestByID(ctx context.Context, id string) (*domain.PickupRequest, error)
		GetSentRequests(ctx context.Context, receiverID, status string) ([]*domain.PickupRequest, error)
		GetReceivedRequests(ctx context.Context, donorID, status string) ([]*domain.PickupRequest, error)
		ConfirmPickupRequest(ctx context.Context, id, donorID string) (*domain.PickupRequest, error)
		RejectPickupRequest(ctx context.Context, id string, req domain.RejectPickupRequest, donorID string) (*domain.PickupRequest, error)
		MarkPickedUp(ctx context.Context, id, receiverID string) (*domain.PickupRequest, error)
	}

	pickupService struct {
		pickupRepository       PickupRepository
		donationRepository     donation.DonationRepository
		userRepository         user.UserRepository
		organizationRepository organization.OrganizationRepository
		notificationRepository notification.NotificationRepository
		activityRepository     notification.ActivityLogRepository
		pointsService          points.PointsService
		effects                sideeffect.Dispatcher
		mailSender             mailing.Sender
	}
)

func NewPickupService(
	pickupRepository PickupRepository,
	donationRepository donation.DonationRepository,
	userRepository user.UserRepository,
	organizationRepository organization.OrganizationRepository,
	notificationRepository notification.NotificationRepository,
	activityRepository notification.ActivityLogRepository,
	pointsService points.PointsService,
	effects sideeffect.Dispatcher,
	mailSender mailing.Sender,
) PickupService {
	return &pickupService{
		pickupRepository:       pickupRepository,
		donationRepository:     donationRepository,
		userRepository:         userRepository,
		organizationRepository: organizationRepository,
		notificationRepository: notificationRepository,
		activityRepository:     activityRepository,
		pointsService:          pointsService,
		effects:                effects,
		mailSender:             mailSender,
	}
}

func (s *pickupService) CreatePickupRequest(ctx context.Context, req domain.CreatePickupRequest, receiverID string) (*domain.PickupRequest, error) {
	receiver, err := s.userRepository.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if receiver.Role != entities.RoleNGO && receiver.Role != entities.RoleVolunteer {
		return nil, domain.ErrUserNotAllowed
	}
	if req.RequestedQuantity < 1 {
		return nil, domain.ErrInvalidRequestedQuantity
	}

	d, err := s.donationRepository.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	if d.ExpiryDate.Before(time.Now()) {
		return nil, domain.ErrDonationExpired
	}

	var orgID *uuid.UUID
	if req.OrganizationID != "" {
		parsed, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		orgID = &parsed
	} else if receiver.Role == entities.RoleNGO {
		if org, err := s.organizationRepository.GetByOwner(ctx, receiverID); err == nil {
			orgID = &org.ID
		}
	}

	// Claiming decrements availability and flips the donation to ACCEPTED in
	// one guarded write, so two racing requests cannot both take the last
	// units.
	affected, err := s.donationRepository.ClaimQuantity(ctx, req.DonationID, req.RequestedQuantity, entities.AcceptedBy{
		UserID:         &receiver.ID,
		Name:           fullName(receiver),
		OrganizationID: orgID,
		Role:           receiver.Role,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Re-read to tell "not enough left" apart from "someone else won".
		fresh, err := s.donationRepository.GetDonationByID(ctx, req.DonationID)
		if err != nil {
			return nil, domain.ErrDonationConflict
		}
		if fresh.Status == entities.DonationStatusAvailable && fresh.AvailabilityCount < req.RequestedQuantity {
			return nil, domain.ErrQuantityExceedsAvailable
		}
		return nil, domain.ErrDonationConflict
	}

	request := &entities.PickupRequest{
		ID:                  uuid.New(),
		DonationID:          d.ID,
		ReceiverID:          receiver.ID,
		OrganizationID:      orgID,
		RequestedQuantity:   req.RequestedQuantity,
		Status:              entities.PickupStatusPending,
		PickupTime:          req.PickupTime,
		SpecialInstructions: req.SpecialInstructions,
	}
	if req.PickupDate != "" {
		if date, err := parseDate(req.PickupDate); err == nil {
			request.PickupDate = &date
		}
	}

	if err := s.pickupRepository.CreatePickupRequest(ctx, request); err != nil {
		// Put the claimed units back so the donation is not stranded.
		if restoreErr := s.donationRepository.RestoreQuantity(ctx, req.DonationID, req.RequestedQuantity); restoreErr != nil {
			log.Errorf("restore quantity for donation %s: %v", req.DonationID, restoreErr)
		}
		return nil, err
	}

	if err := s.pointsService.Award(ctx, receiverID, domain.PointsPickup, entities.PointsTypePickup,
		fmt.Sprintf("Points for requesting pickup of %s", d.FoodType),
		points.AwardRef{DonationID: &d.ID, PickupRequestID: &request.ID}); err != nil {
		log.Errorf("award pickup points for %s: %v", receiverID, err)
	}

	s.recordActivity(receiver.ID, d.ID, entities.ActivityAccepted,
		fmt.Sprintf("%s requested pickup of %d %s", fullName(receiver), req.RequestedQuantity, d.Unit))
	s.notifyUser(d.DonorID, entities.NotificationRequestReceived,
		"New pickup request",
		fmt.Sprintf("%s requested %d %s of your %s donation", fullName(receiver), req.RequestedQuantity, d.Unit, d.FoodType),
		request.ID, "PickupRequest")
	if d.Donor != nil && d.Donor.Email != "" {
		s.sendRequestMail(d.Donor.Email, d.Donor.FirstName, receiver, d, request)
	}

	return s.GetPickupRequestByID(ctx, request.ID.String())
}

func (s *pickupService) GetPickupRequestByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepository.GetPickupRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupRequestNotFound
		}
		return nil, err
	}
	return toDomainPickupRequest(request), nil
}

func (s *pickupService) GetSentRequests(ctx context.Context, receiverID, status string) ([]*domain.PickupRequest, error) {
	requests, err := s.pickupRepository.ListByReceiver(ctx, receiverID, status)
	if err != nil {
		return nil, err
	}
	return toDomainPickupRequests(requests), nil
}

func (s *pickupService) GetReceivedRequests(ctx context.Context, donorID, status string) ([]*domain.PickupRequest, error) {
	requests, err := s.pickupRepository.ListByDonor(ctx, donorID, status)
	if err != nil {
		return nil, err
	}
	return toDomainPickupRequests(requests), nil
}

func (s *pickupService) ConfirmPickupRequest(ctx context.Context, id, donorID string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepository.GetPickupRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupRequestNotFound
		}
		return nil, err
	}
	if request.Donation == nil || request.Donation.DonorID.String() != donorID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	affected, err := s.pickupRepository.TransitionStatus(ctx, id, entities.PickupStatusPending, map[string]interface{}{
		"status": entities.PickupStatusConfirmed,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrPickupNotPending
	}

	if _, err := s.donationRepository.TransitionStatus(ctx, request.DonationID.String(),
		entities.DonationStatusAccepted, map[string]interface{}{
			"status": entities.DonationStatusAllocated,
		}); err != nil {
		log.Errorf("allocate donation %s: %v", request.DonationID, err)
	}

	s.notifyUser(request.ReceiverID, entities.NotificationPickupConfirmed,
		"Pickup confirmed",
		fmt.Sprintf("The donor confirmed your pickup of %s", request.Donation.FoodType),
		request.ID, "PickupRequest")

	return s.GetPickupRequestByID(ctx, id)
}

func (s *pickupService) RejectPickupRequest(ctx context.Context, id string, req domain.RejectPickupRequest, donorID string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepository.GetPickupRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupRequestNotFound
		}
		return nil, err
	}
	if request.Donation == nil || request.Donation.DonorID.String() != donorID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	affected, err := s.pickupRepository.TransitionStatus(ctx, id, entities.PickupStatusPending, map[string]interface{}{
		"status":           entities.PickupStatusRejected,
		"rejection_reason": req.RejectionReason,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrPickupNotPending
	}

	// The claimed units go back into circulation.
	if err := s.donationRepository.RestoreQuantity(ctx, request.DonationID.String(), request.RequestedQuantity); err != nil {
		log.Errorf("restore quantity for donation %s: %v", request.DonationID, err)
	}

	s.notifyUser(request.ReceiverID, entities.NotificationDonationRejected,
		"Pickup request rejected",
		fmt.Sprintf("The donor declined your pickup of %s", request.Donation.FoodType),
		request.ID, "PickupRequest")

	return s.GetPickupRequestByID(ctx, id)
}

func (s *pickupService) MarkPickedUp(ctx context.Context, id, receiverID string) (*domain.PickupRequest, error) {
	request, err := s.pickupRepository.GetPickupRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupRequestNotFound
		}
		return nil, err
	}
	if request.ReceiverID.String() != receiverID {
		return nil, domain.ErrUserNotAllowed
	}

	now := time.Now()
	affected, err := s.pickupRepository.TransitionStatus(ctx, id, entities.PickupStatusConfirmed, map[string]interface{}{
		"status":       entities.PickupStatusPickedUp,
		"completed_at": now,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrPickupNotPending
	}

	if _, err := s.donationRepository.TransitionStatus(ctx, request.DonationID.String(),
		entities.DonationStatusAllocated, map[string]interface{}{
			"status": entities.DonationStatusPickedUp,
		}); err != nil {
		log.Errorf("mark donation %s picked up: %v", request.DonationID, err)
	}

	if err := s.pointsService.Award(ctx, receiverID, domain.PointsPickup, entities.PointsTypePickup,
		"Points for completing a pickup",
		points.AwardRef{DonationID: &request.DonationID, PickupRequestID: &request.ID}); err != nil {
		log.Errorf("award pickup completion points for %s: %v", receiverID, err)
	}

	s.recordActivity(request.ReceiverID, request.DonationID, entities.ActivityPickedUp, "Donation picked up")
	if request.Donation != nil {
		s.notifyUser(request.Donation.DonorID, entities.NotificationDonationPicked,
			"Donation picked up",
			fmt.Sprintf("Your donation of %s has been picked up", request.Donation.FoodType),
			request.ID, "PickupRequest")
	}

	return s.GetPickupRequestByID(ctx, id)
}

func (s *pickupService) recordActivity(userID, donationID uuid.UUID, action, description string) {
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

func (s *pickupService) notifyUser(userID uuid.UUID, notifType, title, message string, entityID uuid.UUID, entityType string) {
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

func (s *pickupService) sendRequestMail(email, firstName string, receiver *entities.User, d *entities.Donation, request *entities.PickupRequest) {
	s.effects.Dispatch("pickup-request-mail", func(ctx context.Context) error {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p><b>%s</b> requested <b>%d %s</b> of your %s donation.</p><p>Log in to confirm or decline the request.</p>",
			firstName, fullName(receiver), request.RequestedQuantity, d.Unit, d.FoodType,
		)
		return s.mailSender.Send(email, "New pickup request", mailing.Template("Someone wants your donation", body))
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

func toDomainPickupRequests(requests []*entities.PickupRequest) []*domain.PickupRequest {
	result := make([]*domain.PickupRequest, 0, len(requests))
	for _, r := range requests {
		result = append(result, toDomainPickupRequest(r))
	}
	return result
}

func toDomainPickupRequest(r *entities.PickupRequest) *domain.PickupRequest {
	result := &domain.PickupRequest{
		ID:                  r.ID.String(),
		DonationID:          r.DonationID.String(),
		ReceiverID:          r.ReceiverID.String(),
		RequestedQuantity:   r.RequestedQuantity,
		Status:              r.Status,
		PickupDate:          r.PickupDate,
		PickupTime:          r.PickupTime,
		SpecialInstructions: r.SpecialInstructions,
		RejectionReason:     r.RejectionReason,
		CompletedAt:         r.CompletedAt,
		CreatedAt:           r.CreatedAt,
	}
	if r.OrganizationID != nil {
		result.OrganizationID = r.OrganizationID.String()
	}
	if r.Donation != nil {
		result.Donation = donation.ToSummary(r.Donation)
	}
	if r.Receiver != nil {
		result.Receiver = &domain.DonorSummary{
			ID:        r.Receiver.ID.String(),
			FirstName: r.Receiver.FirstName,
			LastName:  r.Receiver.LastName,
			Phone:     r.Receiver.Phone,
			Email:     r.Receiver.Email,
		}
	}
	return result
}
