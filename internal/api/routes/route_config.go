package routes

import (
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/api/handlers"
	"foodbridge-backend/internal/middleware"
	"foodbridge-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	DonationHandler     handlers.DonationHandler
	PickupHandler       handlers.PickupHandler
	PointsHandler       handlers.PointsHandler
	OrganizationHandler handlers.OrganizationHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Donations()
	c.PickupRequests()
	c.Points()
	c.Organizations()
	c.Notifications()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Post("", c.DonationHandler.CreateDonation)
		donations.Get("", c.DonationHandler.GetDonations)
		donations.Get("/history", c.DonationHandler.GetMyDonations)
		donations.Get("/activity", c.DonationHandler.GetUserActivity)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Put("/:id", c.DonationHandler.UpdateDonation)
		donations.Delete("/:id", c.DonationHandler.CancelDonation)
		donations.Post("/:id/accept", c.DonationHandler.AcceptDonation)
		donations.Post("/:id/reject", c.DonationHandler.RejectDonation)
		donations.Get("/:id/history", c.DonationHandler.GetDonationHistory)
	}
}

func (c *Config) PickupRequests() {
	pickups := c.App.Group("/api/v1/pickup-requests", c.Middleware.AuthMiddleware(c.JWTService))
	{
		pickups.Post("", c.PickupHandler.CreatePickupRequest)
		pickups.Get("", c.PickupHandler.GetPickupRequests)
		pickups.Get("/:id", c.PickupHandler.GetPickupRequestByID)
		pickups.Put("/:id/confirm", c.PickupHandler.ConfirmPickupRequest)
		pickups.Put("/:id/reject", c.PickupHandler.RejectPickupRequest)
		pickups.Put("/:id/pickup", c.PickupHandler.MarkPickedUp)
	}
}

func (c *Config) Points() {
	points := c.App.Group("/api/v1/points", c.Middleware.AuthMiddleware(c.JWTService))
	{
		points.Get("/my-points", c.PointsHandler.GetMyPoints)
		points.Get("/history", c.PointsHandler.GetPointsHistory)
		points.Get("/leaderboard", c.PointsHandler.GetLeaderboard)
		points.Get("/info", c.PointsHandler.GetPointsInfo)
		points.Post("/redeem", c.PointsHandler.RedeemPoints)
		points.Post("/:id/reverse",
			c.Middleware.RequireRoles(entities.RoleAdmin),
			c.PointsHandler.ReversePoints)
	}
}

func (c *Config) Organizations() {
	organizations := c.App.Group("/api/v1/organizations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		organizations.Post("", c.OrganizationHandler.CreateOrganization)
		organizations.Get("", c.OrganizationHandler.GetOrganizations)
		organizations.Get("/:id", c.OrganizationHandler.GetOrganizationByID)
		organizations.Put("/:id/verify",
			c.Middleware.RequireRoles(entities.RoleAdmin),
			c.OrganizationHandler.VerifyOrganization)
		organizations.Post("/:id/ratings", c.OrganizationHandler.RateOrganization)
		organizations.Get("/:id/ratings", c.OrganizationHandler.GetOrganizationRatings)
	}
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("", c.NotificationHandler.GetNotifications)
		notifications.Put("/read", c.NotificationHandler.MarkAllRead)
	}
}
