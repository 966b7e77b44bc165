package main

import (
	"log"
	"os"

	"foodbridge-backend/cmd/config"
	migration "foodbridge-backend/cmd/database/migrate"
	"foodbridge-backend/cmd/database/seed"
	"foodbridge-backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seed.Seed(db); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
