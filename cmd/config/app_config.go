package config

import (
	"context"
	"os"
	"time"

	"foodbridge-backend/internal/api/handlers"
	"foodbridge-backend/internal/api/routes"
	"foodbridge-backend/internal/middleware"
	"foodbridge-backend/internal/utils"
	"foodbridge-backend/internal/utils/mailing"
	"foodbridge-backend/internal/utils/storage"
	"foodbridge-backend/pkg/donation"
	"foodbridge-backend/pkg/jwt"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/organization"
	"foodbridge-backend/pkg/pickup"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/sideeffect"
	"foodbridge-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailSender := mailing.NewSender()
	effects := sideeffect.NewAsync(2, 256, 15*time.Second)

	// Repository
	userRepository := user.NewUserRepository(db)
	organizationRepository := organization.NewOrganizationRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	pickupRepository := pickup.NewPickupRepository(db)
	pointsRepository := points.NewPointsRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	activityRepository := notification.NewActivityLogRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	pointsService := points.NewPointsService(pointsRepository, userRepository)
	notificationService := notification.NewNotificationService(notificationRepository)
	organizationService := organization.NewOrganizationService(
		organizationRepository,
		userRepository,
		notificationRepository,
		effects,
	)
	donationService := donation.NewDonationService(
		donationRepository,
		userRepository,
		organizationRepository,
		notificationRepository,
		activityRepository,
		pointsService,
		effects,
		mailSender,
		s3,
	)
	pickupService := pickup.NewPickupService(
		pickupRepository,
		donationRepository,
		userRepository,
		organizationRepository,
		notificationRepository,
		activityRepository,
		pointsService,
		effects,
		mailSender,
	)

	// Handler
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService, validator)
	pointsHandler := handlers.NewPointsHandler(pointsService, validator)
	organizationHandler := handlers.NewOrganizationHandler(organizationService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Background sweep so stale donations expire even without traffic.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := donationService.ExpireStale(context.Background()); err != nil {
				log.Errorf("expire stale donations: %v", err)
			} else if n > 0 {
				log.Infof("expired %d stale donations", n)
			}
		}
	}()

	// routes
	routesConfig := routes.Config{
		App:                 app,
		DonationHandler:     donationHandler,
		PickupHandler:       pickupHandler,
		PointsHandler:       pointsHandler,
		OrganizationHandler: organizationHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
