package migration

import (
	"fmt"
	"log"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&entities.User{},
		&entities.Organization{},
		&entities.OrganizationRating{},
		&entities.Donation{},
		&entities.PickupRequest{},
		&entities.PointsTransaction{},
		&entities.Notification{},
		&entities.ActivityLog{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating %T: %v", model, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
