package points

import (
	"context"
	"errors"
	"strings"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// AwardRef optionally links a transaction back to the donation or pickup
	// request that produced it.
	AwardRef struct {
		DonationID      *uuid.UUID
		PickupRequestID *uuid.UUID
	}

	PointsService interface {
		Award(ctx context.Context, userID string, points int, transactionType, description string, ref AwardRef) error
		Redeem(ctx context.Context, userID string, req domain.RedeemPointsRequest) (*domain.PointsSummary, error)
		Reverse(ctx context.Context, transactionID string, reason string) (*domain.PointsTransaction, error)
		GetSummary(ctx context.Context, userID string) (*domain.PointsSummary, error)
		GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PointsTransaction, int64, error)
		GetLeaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
		GetPointsInfo() *domain.PointsInfo
	}

	pointsService struct {
		pointsRepository PointsRepository
		userRepository   user.UserRepository
	}
)

func NewPointsService(pointsRepository PointsRepository, userRepository user.UserRepository) PointsService {
	return &pointsService{
		pointsRepository: pointsRepository,
		userRepository:   userRepository,
	}
}

func (s *pointsService) Award(ctx context.Context, userID string, points int, transactionType, description string, ref AwardRef) error {
	if points <= 0 {
		return domain.ErrInvalidPointsAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	// Balance first, then the log row. The two writes are not wrapped in a
	// transaction; if the log insert fails after the balance update the
	// balance can drift from the ledger. Callers treat the award as
	// best-effort.
	if err := s.userRepository.IncrementEarnedPoints(ctx, userID, points); err != nil {
		return err
	}

	return s.pointsRepository.CreateTransaction(ctx, &entities.PointsTransaction{
		ID:                     uuid.New(),
		UserID:                 userUUID,
		TransactionType:        transactionType,
		Points:                 points,
		Description:            description,
		RelatedDonationID:      ref.DonationID,
		RelatedPickupRequestID: ref.PickupRequestID,
	})
}

func (s *pointsService) Redeem(ctx context.Context, userID string, req domain.RedeemPointsRequest) (*domain.PointsSummary, error) {
	if req.Points <= 0 {
		return nil, domain.ErrInvalidPointsAmount
	}

	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if u.RedeemablePoints < req.Points {
		return nil, domain.ErrInsufficientPoints
	}

	if err := s.userRepository.DecrementRedeemablePoints(ctx, userID, req.Points); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Reward redemption"
	}

	if err := s.pointsRepository.CreateTransaction(ctx, &entities.PointsTransaction{
		ID:              uuid.New(),
		UserID:          u.ID,
		TransactionType: entities.PointsTypeRedemption,
		Points:          -req.Points,
		Description:     description,
	}); err != nil {
		return nil, err
	}

	return s.GetSummary(ctx, userID)
}

func (s *pointsService) Reverse(ctx context.Context, transactionID string, reason string) (*domain.PointsTransaction, error) {
	tx, err := s.pointsRepository.GetTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	if tx.IsReversed {
		return nil, domain.ErrTransactionReversed
	}

	// The conditional update is the real guard: it wins exactly once even
	// if two reversals race past the read above.
	affected, err := s.pointsRepository.MarkReversed(ctx, transactionID, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrTransactionReversed
	}

	userID := tx.UserID.String()
	if tx.TransactionType == entities.PointsTypeRedemption {
		// Restore the redeemed points.
		restored := -tx.Points
		if err := s.userRepository.ApplyReversalDelta(ctx, userID, restored, 0, -restored); err != nil {
			return nil, err
		}
	} else {
		// Take back a previous award.
		if err := s.userRepository.ApplyReversalDelta(ctx, userID, -tx.Points, -tx.Points, 0); err != nil {
			return nil, err
		}
	}

	reversed, err := s.pointsRepository.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(reversed), nil
}

func (s *pointsService) GetSummary(ctx context.Context, userID string) (*domain.PointsSummary, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.PointsSummary{
		RedeemablePoints: u.RedeemablePoints,
		TotalEarned:      u.TotalPointsEarned,
		TotalRedeemed:    u.TotalPointsRedeemed,
		LastUpdated:      u.PointsLastUpdated,
	}, nil
}

func (s *pointsService) GetHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PointsTransaction, int64, error) {
	transactions, count, err := s.pointsRepository.GetUserTransactions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.PointsTransaction, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, toDomainTransaction(tx))
	}
	return result, count, nil
}

func (s *pointsService) GetLeaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	users, err := s.userRepository.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		result = append(result, &domain.LeaderboardEntry{
			Rank:              i + 1,
			UserID:            u.ID.String(),
			Name:              strings.TrimSpace(u.FirstName + " " + u.LastName),
			ProfileImageURL:   u.ProfileImageURL,
			RedeemablePoints:  u.RedeemablePoints,
			TotalPointsEarned: u.TotalPointsEarned,
		})
	}
	return result, nil
}

func (s *pointsService) GetPointsInfo() *domain.PointsInfo {
	return &domain.PointsInfo{
		Rules: map[string]domain.PointsRule{
			"donation": {
				Action:      "Make a donation",
				Points:      domain.PointsDonation,
				Description: "Earn points when you donate food",
			},
			"pickup": {
				Action:      "Complete a pickup",
				Points:      domain.PointsPickup,
				Description: "Earn points as a volunteer when you complete a food pickup",
			},
			"volunteer": {
				Action:      "Volunteer activities",
				Points:      domain.PointsVolunteerActivity,
				Description: "Earn points for other volunteer activities",
			},
		},
		Tiers: map[string]domain.PointsTier{
			"bronze":   {MinPoints: 0, Name: "Bronze", Badge: "bronze"},
			"silver":   {MinPoints: 100, Name: "Silver", Badge: "silver"},
			"gold":     {MinPoints: 250, Name: "Gold", Badge: "gold"},
			"platinum": {MinPoints: 500, Name: "Platinum", Badge: "platinum"},
		},
		Rewards: []domain.PointsReward{
			{Points: 50, Name: "Small Reward", Description: "Unlock a small reward"},
			{Points: 100, Name: "Medium Reward", Description: "Unlock a medium reward"},
			{Points: 250, Name: "Large Reward", Description: "Unlock a large reward"},
			{Points: 500, Name: "Premium Reward", Description: "Unlock a premium reward"},
		},
	}
}

func toDomainTransaction(tx *entities.PointsTransaction) *domain.PointsTransaction {
	return &domain.PointsTransaction{
		ID:              tx.ID.String(),
		UserID:          tx.UserID.String(),
		TransactionType: tx.TransactionType,
		Points:          tx.Points,
		Description:     tx.Description,
		IsReversed:      tx.IsReversed,
		ReversalReason:  tx.ReversalReason,
		ReversedAt:      tx.ReversedAt,
		CreatedAt:       tx.CreatedAt,
	}
}
