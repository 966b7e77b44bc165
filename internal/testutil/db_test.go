package testutil

import (
	"testing"

	"foodbridge-backend/entities"

	"github.com/google/uuid"
)

// The schema has to migrate and accept writes on sqlite for every entity,
// with identifiers assigned by the application rather than the database.
func TestNewTestDBAcceptsAllEntities(t *testing.T) {
	db := NewTestDB(t)

	donor := CreateUser(t, db, entities.RoleDonor)
	ngoUser := CreateUser(t, db, entities.RoleNGO)
	org := CreateOrganization(t, db, ngoUser)
	d := CreateDonation(t, db, donor, 4)

	rows := []interface{}{
		&entities.OrganizationRating{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			UserID:         donor.ID,
			Rating:         4,
		},
		&entities.PickupRequest{
			ID:                uuid.New(),
			DonationID:        d.ID,
			ReceiverID:        ngoUser.ID,
			RequestedQuantity: 2,
			Status:            entities.PickupStatusPending,
		},
		&entities.PointsTransaction{
			ID:              uuid.New(),
			UserID:          donor.ID,
			TransactionType: entities.PointsTypeDonation,
			Points:          10,
		},
		&entities.Notification{
			ID:      uuid.New(),
			UserID:  donor.ID,
			Type:    entities.NotificationDonationAccepted,
			Title:   "Donation accepted",
			Message: "Your donation was accepted",
		},
		&entities.ActivityLog{
			ID:         uuid.New(),
			UserID:     donor.ID,
			DonationID: d.ID,
			Action:     entities.ActivityCreated,
		},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create %T: %v", row, err)
		}
	}

	var loaded entities.Donation
	if err := db.First(&loaded, "id = ?", d.ID).Error; err != nil {
		t.Fatalf("read back donation: %v", err)
	}
	if loaded.ID != d.ID {
		t.Errorf("donation id = %s, want %s", loaded.ID, d.ID)
	}
}
