package testutil

import (
	"testing"
	"time"

	"foodbridge-backend/entities"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database with the full schema. Each
// call gets its own database, so tests never share state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database with shared cache keeps every pooled
	// connection on the same schema; the random name isolates tests.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Organization{},
		&entities.OrganizationRating{},
		&entities.Donation{},
		&entities.PickupRequest{},
		&entities.PointsTransaction{},
		&entities.Notification{},
		&entities.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()

	u := &entities.User{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  role,
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

func CreateOrganization(t *testing.T, db *gorm.DB, owner *entities.User) *entities.Organization {
	t.Helper()

	org := &entities.Organization{
		ID:                 uuid.New(),
		Name:               "Org " + uuid.NewString()[:8],
		OrganizationType:   "NGO",
		Email:              uuid.NewString() + "@org.example.com",
		Phone:              "9000000000",
		Address:            "12 Test Road",
		City:               "Pune",
		State:              "MH",
		VerificationStatus: entities.VerificationApproved,
		IsActive:           true,
		CreatedByID:        owner.ID,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("create test organization: %v", err)
	}
	return org
}

func CreateDonation(t *testing.T, db *gorm.DB, donor *entities.User, quantity int) *entities.Donation {
	t.Helper()

	now := time.Now()
	d := &entities.Donation{
		ID:                uuid.New(),
		DonorID:           donor.ID,
		FoodType:          "Rice",
		FoodCategory:      "COOKED",
		Quantity:          quantity,
		Unit:              "KG",
		PreparationDate:   now.Add(-2 * time.Hour),
		ExpiryDate:        now.Add(24 * time.Hour),
		Address:           "12 Test Road",
		City:              "Pune",
		ContactName:       donor.FirstName,
		ContactPhone:      "9123456789",
		Status:            entities.DonationStatusAvailable,
		AvailabilityCount: quantity,
	}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("create test donation: %v", err)
	}
	return d
}
