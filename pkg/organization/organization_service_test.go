package organization

import (
	"context"
	"errors"
	"math"
	"testing"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/testutil"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (OrganizationService, OrganizationRepository, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)

	repo := NewOrganizationRepository(db)
	svc := NewOrganizationService(
		repo,
		user.NewUserRepository(db),
		notification.NewNotificationRepository(db),
		sideeffect.NewSynchronous(),
	)
	return svc, repo, db
}

func TestRecordDecisionUpdatesAcceptanceScore(t *testing.T) {
	_, repo, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)

	// Scores are 1 + 4*(accepted/decisions) after each decision.
	steps := []struct {
		accepted  bool
		wantScore float64
	}{
		{true, 5},
		{false, 3},
		{false, 7.0 / 3},
		{true, 3},
	}
	for i, step := range steps {
		updated, err := repo.RecordDecision(ctx, org.ID.String(), step.accepted)
		if err != nil {
			t.Fatalf("RecordDecision(%d) error = %v", i, err)
		}
		if math.Abs(updated.AcceptanceScore-step.wantScore) > 0.01 {
			t.Errorf("step %d: acceptance_score = %v, want %v", i, updated.AcceptanceScore, step.wantScore)
		}
	}

	var refreshed entities.Organization
	if err := db.First(&refreshed, "id = ?", org.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.AcceptedCount != 2 || refreshed.DecisionCount != 4 {
		t.Errorf("counters = %d/%d, want 2/4", refreshed.AcceptedCount, refreshed.DecisionCount)
	}
}

func TestRateOrganization(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)
	rater := testutil.CreateUser(t, db, entities.RoleDonor)

	if _, err := svc.RateOrganization(ctx, org.ID.String(), domain.RateOrganizationRequest{Rating: 6}, rater.ID.String()); !errors.Is(err, domain.ErrInvalidRating) {
		t.Fatalf("RateOrganization(6) error = %v, want ErrInvalidRating", err)
	}

	rating, err := svc.RateOrganization(ctx, org.ID.String(), domain.RateOrganizationRequest{
		Rating:  4,
		Comment: "reliable pickups",
	}, rater.ID.String())
	if err != nil {
		t.Fatalf("RateOrganization() error = %v", err)
	}
	if rating.Rating != 4 {
		t.Errorf("rating = %d, want 4", rating.Rating)
	}

	// One rating per user per organization.
	if _, err := svc.RateOrganization(ctx, org.ID.String(), domain.RateOrganizationRequest{Rating: 2}, rater.ID.String()); !errors.Is(err, domain.ErrAlreadyRated) {
		t.Fatalf("second RateOrganization() error = %v, want ErrAlreadyRated", err)
	}

	second := testutil.CreateUser(t, db, entities.RoleVolunteer)
	if _, err := svc.RateOrganization(ctx, org.ID.String(), domain.RateOrganizationRequest{Rating: 5}, second.ID.String()); err != nil {
		t.Fatalf("RateOrganization(second user) error = %v", err)
	}

	var refreshed entities.Organization
	if err := db.First(&refreshed, "id = ?", org.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.RatingCount != 2 {
		t.Errorf("rating_count = %d, want 2", refreshed.RatingCount)
	}
	if math.Abs(refreshed.AverageRating-4.5) > 0.01 {
		t.Errorf("average_rating = %v, want 4.5", refreshed.AverageRating)
	}

	var ownerNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, entities.NotificationRatingReceived).
		Count(&ownerNotified)
	if ownerNotified != 2 {
		t.Errorf("owner rating notifications = %d, want 2", ownerNotified)
	}
}

func TestStarAverageIndependentOfAcceptanceScore(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)

	if _, err := repo.RecordDecision(ctx, org.ID.String(), false); err != nil {
		t.Fatal(err)
	}

	rater := testutil.CreateUser(t, db, entities.RoleDonor)
	if _, err := svc.RateOrganization(ctx, org.ID.String(), domain.RateOrganizationRequest{Rating: 5}, rater.ID.String()); err != nil {
		t.Fatal(err)
	}

	var refreshed entities.Organization
	if err := db.First(&refreshed, "id = ?", org.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.AcceptanceScore != 1 {
		t.Errorf("acceptance_score = %v, want 1 (untouched by star rating)", refreshed.AcceptanceScore)
	}
	if refreshed.AverageRating != 5 {
		t.Errorf("average_rating = %v, want 5", refreshed.AverageRating)
	}

	// With at least one star rating, the display value follows the stars.
	dto, err := svc.GetOrganizationByID(ctx, org.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if dto.DisplayRating != 5 {
		t.Errorf("display_rating = %v, want star average 5", dto.DisplayRating)
	}
}

func TestDisplayRatingFallsBackToAcceptanceScore(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)

	if _, err := repo.RecordDecision(ctx, org.ID.String(), true); err != nil {
		t.Fatal(err)
	}

	dto, err := svc.GetOrganizationByID(ctx, org.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if dto.DisplayRating != 5 || dto.RatingCount != 0 {
		t.Errorf("display_rating = %v with %d ratings, want acceptance score 5 with 0 ratings", dto.DisplayRating, dto.RatingCount)
	}
}

func TestVerifyOrganization(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	org := testutil.CreateOrganization(t, db, owner)
	db.Model(org).Update("verification_status", entities.VerificationPending)
	admin := testutil.CreateUser(t, db, entities.RoleAdmin)

	if err := svc.VerifyOrganization(ctx, org.ID.String(), domain.VerifyOrganizationRequest{VerificationStatus: "MAYBE"}, admin.ID.String()); !errors.Is(err, domain.ErrInvalidVerificationState) {
		t.Fatalf("VerifyOrganization(MAYBE) error = %v, want ErrInvalidVerificationState", err)
	}

	if err := svc.VerifyOrganization(ctx, org.ID.String(), domain.VerifyOrganizationRequest{VerificationStatus: entities.VerificationApproved}, admin.ID.String()); err != nil {
		t.Fatalf("VerifyOrganization() error = %v", err)
	}

	var refreshed entities.Organization
	if err := db.First(&refreshed, "id = ?", org.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.VerificationStatus != entities.VerificationApproved {
		t.Errorf("verification_status = %s, want APPROVED", refreshed.VerificationStatus)
	}
	if refreshed.VerifiedByID == nil || *refreshed.VerifiedByID != admin.ID {
		t.Errorf("verified_by = %v, want admin", refreshed.VerifiedByID)
	}
	if refreshed.VerifiedDate == nil {
		t.Error("verified_date not set")
	}

	var ownerNotified int64
	db.Model(&entities.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, entities.NotificationOrganizationApproved).
		Count(&ownerNotified)
	if ownerNotified != 1 {
		t.Errorf("owner notifications = %d, want 1", ownerNotified)
	}
}

func TestGetOrganizationsListsApprovedActiveOnly(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, entities.RoleNGO)
	approved := testutil.CreateOrganization(t, db, owner)

	otherOwner := testutil.CreateUser(t, db, entities.RoleNGO)
	pending := testutil.CreateOrganization(t, db, otherOwner)
	db.Model(pending).Update("verification_status", entities.VerificationPending)

	thirdOwner := testutil.CreateUser(t, db, entities.RoleNGO)
	inactive := testutil.CreateOrganization(t, db, thirdOwner)
	db.Model(inactive).Update("is_active", false)

	orgs, err := svc.GetOrganizations(ctx)
	if err != nil {
		t.Fatalf("GetOrganizations() error = %v", err)
	}
	if len(orgs) != 1 || orgs[0].ID != approved.ID.String() {
		t.Fatalf("listed %d organizations, want only the approved active one", len(orgs))
	}
}
