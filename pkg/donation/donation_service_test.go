package donation

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/testutil"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/organization"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (DonationService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := user.NewUserRepository(db)
	svc := NewDonationService(
		NewDonationRepository(db),
		userRepo,
		organization.NewOrganizationRepository(db),
		notification.NewNotificationRepository(db),
		notification.NewActivityLogRepository(db),
		points.NewPointsService(points.NewPointsRepository(db), userRepo),
		sideeffect.NewSynchronous(),
		&testutil.NopMailer{},
		&testutil.NopStorage{},
	)
	return svc, db
}

func validCreateRequest() domain.CreateDonationRequest {
	return domain.CreateDonationRequest{
		FoodType:        "Vegetable Biryani",
		FoodCategory:    "COOKED",
		Quantity:        8,
		Unit:            "KG",
		PreparationDate: time.Now().Add(-2 * time.Hour).Format(time.RFC3339),
		ExpiryDate:      time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		Address:         "44 MG Road",
		City:            "Pune",
		ContactName:     "Asha",
		ContactPhone:    "9876543210",
	}
}

func TestCreateDonationAwardsPointsAndNotifies(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngo := testutil.CreateUser(t, db, entities.RoleNGO)

	created, err := svc.CreateDonation(ctx, validCreateRequest(), donor.ID.String())
	if err != nil {
		t.Fatalf("CreateDonation() error = %v", err)
	}
	if created.Status != entities.DonationStatusAvailable {
		t.Errorf("status = %s, want AVAILABLE", created.Status)
	}
	if created.AvailabilityCount != 8 {
		t.Errorf("availability_count = %d, want quantity 8", created.AvailabilityCount)
	}

	var refreshed entities.User
	if err := db.First(&refreshed, "id = ?", donor.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.RedeemablePoints != domain.PointsDonation {
		t.Errorf("donor points = %d, want %d", refreshed.RedeemablePoints, domain.PointsDonation)
	}

	var activityCount int64
	db.Model(&entities.ActivityLog{}).Where("action = ?", entities.ActivityCreated).Count(&activityCount)
	if activityCount != 1 {
		t.Errorf("activity log rows = %d, want 1", activityCount)
	}

	var broadcast int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", ngo.ID, entities.NotificationDonationAvailable).
		Count(&broadcast)
	if broadcast != 1 {
		t.Errorf("NGO broadcast notifications = %d, want 1", broadcast)
	}
}

func TestCreateDonationValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	tests := []struct {
		name    string
		mutate  func(r *domain.CreateDonationRequest)
		wantErr error
	}{
		{
			name:    "phone too short",
			mutate:  func(r *domain.CreateDonationRequest) { r.ContactPhone = "12345" },
			wantErr: domain.ErrInvalidContactPhone,
		},
		{
			name:    "phone with letters",
			mutate:  func(r *domain.CreateDonationRequest) { r.ContactPhone = "98765abc10" },
			wantErr: domain.ErrInvalidContactPhone,
		},
		{
			name: "expiry before preparation",
			mutate: func(r *domain.CreateDonationRequest) {
				r.PreparationDate = time.Now().Add(48 * time.Hour).Format(time.RFC3339)
			},
			wantErr: domain.ErrInvalidExpiryDate,
		},
		{
			name: "expiry in the past",
			mutate: func(r *domain.CreateDonationRequest) {
				r.PreparationDate = time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
				r.ExpiryDate = time.Now().Add(-1 * time.Hour).Format(time.RFC3339)
			},
			wantErr: domain.ErrExpiryDateInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			if _, err := svc.CreateDonation(ctx, req, donor.ID.String()); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateDonation() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDonationRejectsUnverifiedOrganization(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)
	db.Model(org).Update("verification_status", entities.VerificationPending)

	req := validCreateRequest()
	req.OrganizationUUID = org.ID.String()
	if _, err := svc.CreateDonation(ctx, req, donor.ID.String()); !errors.Is(err, domain.ErrOrganizationUnavailable) {
		t.Fatalf("CreateDonation() error = %v, want ErrOrganizationUnavailable", err)
	}
}

func TestAcceptDonationRecordsDecisionAndCloses(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, ngoUser)
	d := testutil.CreateDonation(t, db, donor, 5)

	accepted, err := svc.AcceptDonation(ctx, d.ID.String(), ngoUser.ID.String())
	if err != nil {
		t.Fatalf("AcceptDonation() error = %v", err)
	}
	// A direct accept takes the whole donation, so it lands on ALLOCATED.
	if accepted.Status != entities.DonationStatusAllocated {
		t.Errorf("status = %s, want ALLOCATED", accepted.Status)
	}
	if accepted.AcceptedBy == nil || accepted.AcceptedBy.UserID != ngoUser.ID.String() {
		t.Errorf("accepted_by = %+v, want snapshot of acceptor", accepted.AcceptedBy)
	}

	var acceptor entities.User
	if err := db.First(&acceptor, "id = ?", ngoUser.ID).Error; err != nil {
		t.Fatal(err)
	}
	if acceptor.RedeemablePoints != domain.PointsPickup {
		t.Errorf("acceptor points = %d, want %d", acceptor.RedeemablePoints, domain.PointsPickup)
	}

	var refreshedOrg entities.Organization
	if err := db.First(&refreshedOrg, "id = ?", org.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshedOrg.AcceptedCount != 1 || refreshedOrg.DecisionCount != 1 {
		t.Errorf("counters = %d/%d, want 1/1", refreshedOrg.AcceptedCount, refreshedOrg.DecisionCount)
	}
	if refreshedOrg.AcceptanceScore != 5 {
		t.Errorf("acceptance_score = %v, want 5", refreshedOrg.AcceptanceScore)
	}

	var notified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", donor.ID, entities.NotificationDonationAccepted).
		Count(&notified)
	if notified != 1 {
		t.Errorf("donor notifications = %d, want 1", notified)
	}

	// A second acceptor loses: the donation is no longer AVAILABLE.
	other := testutil.CreateUser(t, db, entities.RoleVolunteer)
	if _, err := svc.AcceptDonation(ctx, d.ID.String(), other.ID.String()); !errors.Is(err, domain.ErrDonationNotAvailable) {
		t.Fatalf("second AcceptDonation() error = %v, want ErrDonationNotAvailable", err)
	}
}

func TestAcceptDonationRefusesDonorRole(t *testing.T) {
	svc, db := newTestService(t)
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	d := testutil.CreateDonation(t, db, donor, 3)

	if _, err := svc.AcceptDonation(context.Background(), d.ID.String(), donor.ID.String()); !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Fatalf("AcceptDonation() error = %v, want ErrUserNotAllowed", err)
	}
}

func TestAcceptExpiredDonationFails(t *testing.T) {
	svc, db := newTestService(t)
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	d := testutil.CreateDonation(t, db, donor, 3)
	db.Model(d).Update("expiry_date", time.Now().Add(-1*time.Hour))

	_, err := svc.AcceptDonation(context.Background(), d.ID.String(), ngoUser.ID.String())
	if !errors.Is(err, domain.ErrDonationExpired) && !errors.Is(err, domain.ErrDonationNotAvailable) {
		t.Fatalf("AcceptDonation() error = %v, want expired/unavailable", err)
	}

	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", d.ID)
	if refreshed.Status != entities.DonationStatusExpired {
		t.Errorf("status = %s, want EXPIRED after stale sweep", refreshed.Status)
	}
}

func TestRejectDonationReturnsToCirculation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, ngoUser)
	volunteer := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 5)

	rejected, err := svc.RejectDonation(ctx, d.ID.String(), ngoUser.ID.String())
	if err != nil {
		t.Fatalf("RejectDonation() error = %v", err)
	}
	if rejected.Status != entities.DonationStatusAvailable {
		t.Errorf("status = %s, want AVAILABLE", rejected.Status)
	}
	if rejected.AcceptedBy == nil || !rejected.AcceptedBy.Rejected {
		t.Errorf("accepted_by = %+v, want rejected flag set", rejected.AcceptedBy)
	}

	var refreshedOrg entities.Organization
	db.First(&refreshedOrg, "id = ?", org.ID)
	if refreshedOrg.AcceptedCount != 0 || refreshedOrg.DecisionCount != 1 {
		t.Errorf("counters = %d/%d, want 0/1", refreshedOrg.AcceptedCount, refreshedOrg.DecisionCount)
	}
	if refreshedOrg.AcceptanceScore != 1 {
		t.Errorf("acceptance_score = %v, want 1 after all-rejected", refreshedOrg.AcceptanceScore)
	}

	var volunteerNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", volunteer.ID, entities.NotificationDonationRejected).
		Count(&volunteerNotified)
	if volunteerNotified != 1 {
		t.Errorf("volunteer notifications = %d, want 1", volunteerNotified)
	}
}

func TestRejectAfterAcceptReturnsToCirculation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	testutil.CreateOrganization(t, db, ngoUser)
	stranger := testutil.CreateUser(t, db, entities.RoleVolunteer)
	d := testutil.CreateDonation(t, db, donor, 5)

	if _, err := svc.AcceptDonation(ctx, d.ID.String(), ngoUser.ID.String()); err != nil {
		t.Fatalf("AcceptDonation() error = %v", err)
	}

	// Only the user holding the allocation may back out of it.
	if _, err := svc.RejectDonation(ctx, d.ID.String(), stranger.ID.String()); !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Fatalf("stranger RejectDonation() error = %v, want ErrUserNotAllowed", err)
	}

	released, err := svc.RejectDonation(ctx, d.ID.String(), ngoUser.ID.String())
	if err != nil {
		t.Fatalf("RejectDonation() error = %v", err)
	}
	if released.Status != entities.DonationStatusAvailable {
		t.Errorf("status = %s, want AVAILABLE", released.Status)
	}
	if released.AcceptedBy == nil || !released.AcceptedBy.Rejected {
		t.Errorf("accepted_by = %+v, want rejected flag set", released.AcceptedBy)
	}
}

func TestExpireStaleIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	stale := testutil.CreateDonation(t, db, donor, 2)
	db.Model(stale).Update("expiry_date", time.Now().Add(-1*time.Hour))
	testutil.CreateDonation(t, db, donor, 2)

	n, err := svc.ExpireStale(ctx)
	if err != nil {
		t.Fatalf("ExpireStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("first sweep expired %d, want 1", n)
	}

	n, err = svc.ExpireStale(ctx)
	if err != nil {
		t.Fatalf("ExpireStale() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep expired %d, want 0", n)
	}
}

func TestCancelDonationGating(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	cancellable := testutil.CreateDonation(t, db, donor, 2)
	if err := svc.CancelDonation(ctx, cancellable.ID.String(), donor.ID.String()); err != nil {
		t.Fatalf("CancelDonation() error = %v", err)
	}
	var refreshed entities.Donation
	db.First(&refreshed, "id = ?", cancellable.ID)
	if refreshed.Status != entities.DonationStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", refreshed.Status)
	}

	pickedUp := testutil.CreateDonation(t, db, donor, 2)
	db.Model(pickedUp).Update("status", entities.DonationStatusPickedUp)
	if err := svc.CancelDonation(ctx, pickedUp.ID.String(), donor.ID.String()); !errors.Is(err, domain.ErrCancelNotAllowed) {
		t.Fatalf("CancelDonation(PICKED_UP) error = %v, want ErrCancelNotAllowed", err)
	}

	stranger := testutil.CreateUser(t, db, entities.RoleDonor)
	other := testutil.CreateDonation(t, db, donor, 2)
	if err := svc.CancelDonation(ctx, other.ID.String(), stranger.ID.String()); !errors.Is(err, domain.ErrUnauthorizedDonationAccess) {
		t.Fatalf("CancelDonation(stranger) error = %v, want ErrUnauthorizedDonationAccess", err)
	}
}

func TestUpdateDonationPatchesFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	d := testutil.CreateDonation(t, db, donor, 4)

	newCity := "Mumbai"
	badPhone := "12"
	if _, err := svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{ContactPhone: &badPhone}, donor.ID.String()); !errors.Is(err, domain.ErrInvalidContactPhone) {
		t.Fatalf("UpdateDonation(bad phone) error = %v, want ErrInvalidContactPhone", err)
	}

	updated, err := svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{City: &newCity}, donor.ID.String())
	if err != nil {
		t.Fatalf("UpdateDonation() error = %v", err)
	}
	if updated.City != "Mumbai" {
		t.Errorf("city = %s, want Mumbai", updated.City)
	}
	if updated.Quantity != 4 {
		t.Errorf("quantity = %d, want unchanged 4", updated.Quantity)
	}

	// Only the donor may edit.
	other := testutil.CreateUser(t, db, entities.RoleDonor)
	if _, err := svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{City: &newCity}, other.ID.String()); !errors.Is(err, domain.ErrUnauthorizedDonationAccess) {
		t.Fatalf("UpdateDonation(other) error = %v, want ErrUnauthorizedDonationAccess", err)
	}
}

func TestGetDonationsFilters(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	pune := testutil.CreateDonation(t, db, donor, 2)
	mumbai := testutil.CreateDonation(t, db, donor, 2)
	db.Model(mumbai).Updates(map[string]interface{}{"city": "Mumbai", "food_type": "Bread Loaves", "food_category": "BAKERY"})

	byCity, err := svc.GetDonations(ctx, domain.DonationFilter{City: "Pune"}, donor.ID.String(), entities.RoleDonor)
	if err != nil {
		t.Fatalf("GetDonations() error = %v", err)
	}
	if len(byCity) != 1 || byCity[0].ID != pune.ID.String() {
		t.Errorf("city filter returned %d rows", len(byCity))
	}

	byCategory, err := svc.GetDonations(ctx, domain.DonationFilter{FoodCategory: "BAKERY"}, donor.ID.String(), entities.RoleDonor)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].FoodCategory != "BAKERY" {
		t.Errorf("category filter returned %d rows", len(byCategory))
	}

	bySearch, err := svc.GetDonations(ctx, domain.DonationFilter{Search: "bread"}, donor.ID.String(), entities.RoleDonor)
	if err != nil {
		t.Fatal(err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != mumbai.ID.String() {
		t.Errorf("search filter returned %d rows", len(bySearch))
	}
}

func TestGetDonationsRadiusFilter(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	near := testutil.CreateDonation(t, db, donor, 2)
	nearLat, nearLon := 18.5204, 73.8567
	db.Model(near).Updates(map[string]interface{}{"location_latitude": nearLat, "location_longitude": nearLon})

	far := testutil.CreateDonation(t, db, donor, 2)
	farLat, farLon := 19.0760, 72.8777
	db.Model(far).Updates(map[string]interface{}{"location_latitude": farLat, "location_longitude": farLon})

	// no coordinates at all
	testutil.CreateDonation(t, db, donor, 2)

	lat, lon := 18.52, 73.85
	results, err := svc.GetDonations(ctx, domain.DonationFilter{Latitude: &lat, Longitude: &lon, RadiusKm: 25}, donor.ID.String(), entities.RoleDonor)
	if err != nil {
		t.Fatalf("GetDonations() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != near.ID.String() {
		t.Fatalf("radius filter returned %d rows, want only the nearby donation", len(results))
	}
	if results[0].DistanceKm == nil || *results[0].DistanceKm > 25 {
		t.Errorf("distance_km = %v, want populated and within radius", results[0].DistanceKm)
	}
}

func TestGetDonationsNGOScoping(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)

	ownerA := testutil.CreateUser(t, db, entities.RoleNGO)
	orgA := testutil.CreateOrganization(t, db, ownerA)
	ownerB := testutil.CreateUser(t, db, entities.RoleNGO)
	testutil.CreateOrganization(t, db, ownerB)

	open := testutil.CreateDonation(t, db, donor, 2)
	targeted := testutil.CreateDonation(t, db, donor, 2)
	db.Model(targeted).Update("organization_id", orgA.ID)

	forA, err := svc.GetDonations(ctx, domain.DonationFilter{}, ownerA.ID.String(), entities.RoleNGO)
	if err != nil {
		t.Fatalf("GetDonations() error = %v", err)
	}
	if len(forA) != 2 {
		t.Errorf("org A owner sees %d donations, want 2 (open + targeted)", len(forA))
	}

	forB, err := svc.GetDonations(ctx, domain.DonationFilter{}, ownerB.ID.String(), entities.RoleNGO)
	if err != nil {
		t.Fatal(err)
	}
	if len(forB) != 1 || forB[0].ID != open.ID.String() {
		t.Errorf("org B owner sees %d donations, want only the open one", len(forB))
	}

	// Once owner B passes on the open donation it leaves their feed,
	// while owner A still sees it back in circulation.
	if _, err := svc.RejectDonation(ctx, open.ID.String(), ownerB.ID.String()); err != nil {
		t.Fatalf("RejectDonation() error = %v", err)
	}

	forB, err = svc.GetDonations(ctx, domain.DonationFilter{}, ownerB.ID.String(), entities.RoleNGO)
	if err != nil {
		t.Fatal(err)
	}
	if len(forB) != 0 {
		t.Errorf("org B owner sees %d donations after rejecting, want 0", len(forB))
	}

	forA, err = svc.GetDonations(ctx, domain.DonationFilter{}, ownerA.ID.String(), entities.RoleNGO)
	if err != nil {
		t.Fatal(err)
	}
	if len(forA) != 2 {
		t.Errorf("org A owner sees %d donations after B's rejection, want 2", len(forA))
	}
}

func TestGetDonationHistoryAndUserActivity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	testutil.CreateOrganization(t, db, ngoUser)

	created, err := svc.CreateDonation(ctx, validCreateRequest(), donor.ID.String())
	if err != nil {
		t.Fatalf("CreateDonation() error = %v", err)
	}
	if _, err := svc.AcceptDonation(ctx, created.ID, ngoUser.ID.String()); err != nil {
		t.Fatalf("AcceptDonation() error = %v", err)
	}

	history, err := svc.GetDonationHistory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDonationHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history entries = %d, want 2 (created + accepted)", len(history))
	}

	activity, err := svc.GetUserActivity(ctx, ngoUser.ID.String(), 10)
	if err != nil {
		t.Fatalf("GetUserActivity() error = %v", err)
	}
	if len(activity) != 1 || activity[0].Action != entities.ActivityAccepted {
		t.Errorf("activity = %+v, want one ACCEPTED entry", activity)
	}
}

func TestGetMyDonationsRoleScoped(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	donor := testutil.CreateUser(t, db, entities.RoleDonor)
	ngoUser := testutil.CreateUser(t, db, entities.RoleNGO)
	testutil.CreateOrganization(t, db, ngoUser)

	d := testutil.CreateDonation(t, db, donor, 3)
	testutil.CreateDonation(t, db, donor, 1)
	if _, err := svc.AcceptDonation(ctx, d.ID.String(), ngoUser.ID.String()); err != nil {
		t.Fatalf("AcceptDonation() error = %v", err)
	}

	mineAsDonor, err := svc.GetMyDonations(ctx, donor.ID.String(), entities.RoleDonor)
	if err != nil {
		t.Fatal(err)
	}
	if len(mineAsDonor) != 2 {
		t.Errorf("donor history = %d, want 2", len(mineAsDonor))
	}

	mineAsNGO, err := svc.GetMyDonations(ctx, ngoUser.ID.String(), entities.RoleNGO)
	if err != nil {
		t.Fatal(err)
	}
	if len(mineAsNGO) != 1 || mineAsNGO[0].ID != d.ID.String() {
		t.Errorf("NGO history = %d, want the accepted donation only", len(mineAsNGO))
	}
}
