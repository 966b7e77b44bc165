package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/testutil"
	"foodbridge-backend/pkg/points"
	"foodbridge-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func TestReversePointsEndpoint(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := user.NewUserRepository(db)
	svc := points.NewPointsService(points.NewPointsRepository(db), userRepo)
	handler := NewPointsHandler(svc, validator.New())

	app := fiber.New()
	app.Post("/api/v1/points/:id/reverse", handler.ReversePoints)

	member := testutil.CreateUser(t, db, entities.RoleDonor)
	if err := svc.Award(ctx, member.ID.String(), 10, entities.PointsTypeDonation, "seed award", points.AwardRef{}); err != nil {
		t.Fatalf("Award() error = %v", err)
	}

	var tx entities.PointsTransaction
	if err := db.First(&tx, "user_id = ?", member.ID).Error; err != nil {
		t.Fatal(err)
	}

	body, err := json.Marshal(domain.ReversePointsRequest{Reason: "entered twice"})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/points/"+tx.ID.String()+"/reverse", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	refreshed, err := userRepo.GetUserByID(ctx, member.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.RedeemablePoints != 0 {
		t.Errorf("balance after reversal = %d, want 0", refreshed.RedeemablePoints)
	}

	if err := db.First(&tx, "id = ?", tx.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !tx.IsReversed || tx.ReversalReason != "entered twice" {
		t.Errorf("transaction = %+v, want reversed with reason", tx)
	}

	// Reversing the same transaction again conflicts.
	req = httptest.NewRequest(fiber.MethodPost, "/api/v1/points/"+tx.ID.String()+"/reverse", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second reversal status = %d, want %d", resp.StatusCode, fiber.StatusConflict)
	}
}
