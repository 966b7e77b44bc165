package pickup

import (
	"context"
	"errors"
	"testing"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/testutil"
	"foodbridge-backend/pkg/donation"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/organization"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (PickupService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := user.NewUserRepository(db)
	svc := NewPickupService(
		NewPickupRepository(db),
		donation.NewDonationRepository(db),
		userRepo,
		organization.NewOrganizationRepository(db),
		notification.NewNotificationRepository(db),
		notification.NewActivityLogRepository(db),
		points.NewPointsService(points.NewPointsRepository(db), userRepo),
		sideeffect.NewSynchronous(),
		&testutil.NopMailer{},
	)
	return svc, db
}

func TestCreatePickupRequestClaimsQuantity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 5)

	created, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 3,
	}, volunteer.ID.String())
	if err != nil {
		t.Fatalf("CreatePickupRequest() error = %v", err)
	}
	if created.Status != entities.PickupStatusPending {
		t.Errorf("status = %s, want PENDING", created.Status)
	}

	var refreshed entities.Donation
	if err := db.First(&refreshed, "id = ?", d.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.AvailabilityCount != 2 {
		t.Errorf("availability_count = %d, want 2", refreshed.AvailabilityCount)
	}
	if refreshed.Status != entities.DonationStatusAccepted {
		t.Errorf("donation status = %s, want ACCEPTED", refreshed.Status)
	}
	if refreshed.AcceptedBy.UserID == nil || *refreshed.AcceptedBy.UserID != volunteer.ID {
		t.Errorf("accepted_by snapshot missing or wrong: %+v", refreshed.AcceptedBy)
	}

	var refreshedUser entities.User
	if err := db.First(&refreshedUser, "id = ?", volunteer.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshedUser.RedeemablePoints != domain.PointsPickup {
		t.Errorf("receiver points = %d, want %d", refreshedUser.RedeemablePoints, domain.PointsPickup)
	}

	var donorNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", donor.ID, entities.NotificationRequestReceived).
		Count(&donorNotified)
	if donorNotified != 1 {
		t.Errorf("donor notifications = %d, want 1", donorNotified)
	}
}

func TestCreatePickupRequestQuantityExceedsAvailable(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 2)

	_, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 5,
	}, volunteer.ID.String())
	if !errors.Is(err, domain.ErrQuantityExceedsAvailable) {
		t.Fatalf("CreatePickupRequest() error = %v, want ErrQuantityExceedsAvailable", err)
	}

	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", d.ID)
	if refreshed.AvailabilityCount != 2 || refreshed.Status != entities.DonationStatusAvailable {
		t.Errorf("donation mutated by failed claim: count=%d status=%s", refreshed.AvailabilityCount, refreshed.Status)
	}
}

func TestCreatePickupRequestRefusesDonorRole(t *testing.T) {
	svc, db := newTestService(t)
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	d := testutil.CreateDonation(t, db, donor, 2)

	_, err := svc.CreatePickupRequest(context.Background(), domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 1,
	}, donor.ID.String())
	if !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Fatalf("CreatePickupRequest() error = %v, want ErrUserNotAllowed", err)
	}
}

func TestConfirmPickupRequestAllocatesDonation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 4)

	created, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 4,
	}, volunteer.ID.String())
	if err != nil {
		t.Fatalf("CreatePickupRequest() error = %v", err)
	}

	// Only the donor can confirm.
	if _, err := svc.ConfirmPickupRequest(ctx, created.ID, volunteer.ID.String()); !errors.Is(err, domain.ErrUnauthorizedDonationAccess) {
		t.Fatalf("ConfirmPickupRequest(receiver) error = %v, want ErrUnauthorizedDonationAccess", err)
	}

	confirmed, err := svc.ConfirmPickupRequest(ctx, created.ID, donor.ID.String())
	if err != nil {
		t.Fatalf("ConfirmPickupRequest() error = %v", err)
	}
	if confirmed.Status != entities.PickupStatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", confirmed.Status)
	}

	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", d.ID)
	if refreshed.Status != entities.DonationStatusAllocated {
		t.Errorf("donation status = %s, want ALLOCATED", refreshed.Status)
	}

	// Confirming twice hits the status guard.
	if _, err := svc.ConfirmPickupRequest(ctx, created.ID, donor.ID.String()); !errors.Is(err, domain.ErrPickupNotPending) {
		t.Fatalf("second ConfirmPickupRequest() error = %v, want ErrPickupNotPending", err)
	}
}

func TestRejectPickupRequestRestoresQuantity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 5)

	created, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 2,
	}, volunteer.ID.String())
	if err != nil {
		t.Fatalf("CreatePickupRequest() error = %v", err)
	}

	rejected, err := svc.RejectPickupRequest(ctx, created.ID, domain.RejectPickupRequest{
		RejectionReason: "pickup window does not work",
	}, donor.ID.String())
	if err != nil {
		t.Fatalf("RejectPickupRequest() error = %v", err)
	}
	if rejected.Status != entities.PickupStatusRejected {
		t.Errorf("status = %s, want REJECTED", rejected.Status)
	}
	if rejected.RejectionReason != "pickup window does not work" {
		t.Errorf("rejection_reason = %q", rejected.RejectionReason)
	}

	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", d.ID)
	if refreshed.AvailabilityCount != 5 {
		t.Errorf("availability_count = %d, want restored 5", refreshed.AvailabilityCount)
	}
	if refreshed.Status != entities.DonationStatusAvailable {
		t.Errorf("donation status = %s, want AVAILABLE", refreshed.Status)
	}

	var receiverNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", volunteer.ID, entities.NotificationDonationRejected).
		Count(&receiverNotified)
	if receiverNotified != 1 {
		t.Errorf("receiver notifications = %d, want 1", receiverNotified)
	}
}

func TestMarkPickedUpCompletesFlow(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 3)

	created, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{
		DonationID:        d.ID.String(),
		RequestedQuantity: 3,
	}, volunteer.ID.String())
	if err != nil {
		t.Fatalf("CreatePickupRequest() error = %v", err)
	}

	// Pickup before donor confirmation is refused.
	if _, err := svc.MarkPickedUp(ctx, created.ID, volunteer.ID.String()); !errors.Is(err, domain.ErrPickupNotPending) {
		t.Fatalf("MarkPickedUp(pending) error = %v, want ErrPickupNotPending", err)
	}

	if _, err := svc.ConfirmPickupRequest(ctx, created.ID, donor.ID.String()); err != nil {
		t.Fatalf("ConfirmPickupRequest() error = %v", err)
	}

	if _, err := svc.MarkPickedUp(ctx, created.ID, donor.ID.String()); !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Fatalf("MarkPickedUp(donor) error = %v, want ErrUserNotAllowed", err)
	}

	picked, err := svc.MarkPickedUp(ctx, created.ID, volunteer.ID.String())
	if err != nil {
		t.Fatalf("MarkPickedUp() error = %v", err)
	}
	if picked.Status != entities.PickupStatusPickedUp {
		t.Errorf("status = %s, want PICKED_UP", picked.Status)
	}
	if picked.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", d.ID)
	if refreshed.Status != entities.DonationStatusPickedUp {
		t.Errorf("donation status = %s, want PICKED_UP", refreshed.Status)
	}

	// One award at request time, a second at completion.
	var refreshedUser entities.User
	db.First(&refreshedUser, "id = ?", volunteer.ID)
	if refreshedUser.RedeemablePoints != 2*domain.PointsPickup {
		t.Errorf("receiver points = %d, want %d", refreshedUser.RedeemablePoints, 2*domain.PointsPickup)
	}

	var donorNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", donor.ID, entities.NotificationDonationPicked).
		Count(&donorNotified)
	if donorNotified != 1 {
		t.Errorf("donor notifications = %d, want 1", donorNotified)
	}
}

func TestListRequestsByDirectionAndStatus(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)

	first := testutil.CreateDonation(t, db, donor, 2)
	second := testutil.CreateDonation(t, db, donor, 2)

	a, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{DonationID: first.ID.String(), RequestedQuantity: 1}, volunteer.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreatePickupRequest(ctx, domain.CreatePickupRequest{DonationID: second.ID.String(), RequestedQuantity: 1}, volunteer.ID.String()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ConfirmPickupRequest(ctx, a.ID, donor.ID.String()); err != nil {
		t.Fatal(err)
	}

	sent, err := svc.GetSentRequests(ctx, volunteer.ID.String(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 2 {
		t.Errorf("sent requests = %d, want 2", len(sent))
	}

	received, err := svc.GetReceivedRequests(ctx, donor.ID.String(), entities.PickupStatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(received) != 1 {
		t.Errorf("received PENDING requests = %d, want 1", len(received))
	}

	confirmedOnly, err := svc.GetSentRequests(ctx, volunteer.ID.String(), entities.PickupStatusConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if len(confirmedOnly) != 1 || confirmedOnly[0].ID != a.ID {
		t.Errorf("sent CONFIRMED requests = %d, want the confirmed one", len(confirmedOnly))
	}
}
