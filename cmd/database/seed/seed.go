package seed

import (
	"fmt"
	"log"

	"foodbridge-backend/entities"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the platform admin and a couple of verified NGOs for local
// development. Existing rows are left alone, so running it twice is safe.
func Seed(db *gorm.DB) error {
	admin, err := seedAdmin(db)
	if err != nil {
		return err
	}
	if err := seedTestNGOs(db, admin.ID); err != nil {
		return err
	}
	fmt.Println("Database seeding complete")
	return nil
}

func seedAdmin(db *gorm.DB) (*entities.User, error) {
	var existing entities.User
	if err := db.Where("email = ?", "admin@foodbridge.local").First(&existing).Error; err == nil {
		return &existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &entities.User{
		ID:           uuid.New(),
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        "admin@foodbridge.local",
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}
	log.Println("seeded admin user admin@foodbridge.local")
	return admin, nil
}

func seedTestNGOs(db *gorm.DB, adminID uuid.UUID) error {
	ngos := []struct {
		ownerEmail string
		ownerName  string
		orgName    string
		city       string
	}{
		{"hopekitchen@foodbridge.local", "Hope", "Hope Kitchen Foundation", "Pune"},
		{"mealbridge@foodbridge.local", "Meal", "MealBridge Trust", "Mumbai"},
	}

	for _, n := range ngos {
		var existing entities.User
		if err := db.Where("email = ?", n.ownerEmail).First(&existing).Error; err == nil {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		owner := &entities.User{
			ID:           uuid.New(),
			FirstName:    n.ownerName,
			LastName:     "NGO",
			Email:        n.ownerEmail,
			PasswordHash: string(hash),
			Role:         entities.RoleNGO,
			IsActive:     true,
		}
		if err := db.Create(owner).Error; err != nil {
			return err
		}

		org := &entities.Organization{
			ID:                 uuid.New(),
			Name:               n.orgName,
			OrganizationType:   "NGO",
			Email:              n.ownerEmail,
			Phone:              "9999900000",
			City:               n.city,
			State:              "MH",
			Address:            "seed address",
			VerificationStatus: entities.VerificationApproved,
			VerifiedByID:       &adminID,
			IsActive:           true,
			CreatedByID:        owner.ID,
		}
		if err := db.Create(org).Error; err != nil {
			return err
		}
		log.Printf("seeded NGO %s (%s)", n.orgName, n.ownerEmail)
	}
	return nil
}
