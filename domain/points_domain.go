package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetPoints      = "user points retrieved successfully"
	MessageSuccessGetHistoryLog  = "points history retrieved successfully"
	MessageSuccessGetLeaderboard = "leaderboard retrieved successfully"
	MessageSuccessRedeemPoints   = "points redeemed successfully"
	MessageSuccessGetPointsInfo  = "points information retrieved successfully"
	MessageSuccessReversePoints  = "points transaction reversed successfully"

	MessageFailedGetPoints      = "failed to retrieve user points"
	MessageFailedGetHistoryLog  = "failed to retrieve points history"
	MessageFailedGetLeaderboard = "failed to retrieve leaderboard"
	MessageFailedRedeemPoints   = "failed to redeem points"
	MessageFailedReversePoints  = "failed to reverse points transaction"

	ErrInvalidPointsAmount = errors.New("points must be a positive number")
	ErrInsufficientPoints  = errors.New("insufficient points to redeem")
	ErrTransactionNotFound = errors.New("points transaction not found")
	ErrTransactionReversed = errors.New("transaction already reversed")
)

// Point values per action, from the platform reward rules.
const (
	PointsDonation          = 10
	PointsPickup            = 5
	PointsVolunteerActivity = 3
	PointsBonus             = 0
)

type (
	RedeemPointsRequest struct {
		Points      int    `json:"points" validate:"required,min=1"`
		Description string `json:"description" validate:"omitempty,max=255"`
	}

	ReversePointsRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=255"`
	}

	PointsSummary struct {
		RedeemablePoints int        `json:"redeemable_points"`
		TotalEarned      int        `json:"total_earned"`
		TotalRedeemed    int        `json:"total_redeemed"`
		LastUpdated      *time.Time `json:"last_updated,omitempty"`
	}

	PointsTransaction struct {
		ID              string     `json:"id"`
		UserID          string     `json:"user_id"`
		TransactionType string     `json:"transaction_type"`
		Points          int        `json:"points"`
		Description     string     `json:"description,omitempty"`
		IsReversed      bool       `json:"is_reversed"`
		ReversalReason  string     `json:"reversal_reason,omitempty"`
		ReversedAt      *time.Time `json:"reversed_at,omitempty"`
		CreatedAt       time.Time  `json:"created_at"`
	}

	LeaderboardEntry struct {
		Rank              int    `json:"rank"`
		UserID            string `json:"id"`
		Name              string `json:"name"`
		ProfileImageURL   string `json:"profile_image_url,omitempty"`
		RedeemablePoints  int    `json:"redeemable_points"`
		TotalPointsEarned int    `json:"total_points_earned"`
	}

	PointsRule struct {
		Action      string `json:"action"`
		Points      int    `json:"points"`
		Description string `json:"description"`
	}

	PointsTier struct {
		MinPoints int    `json:"minPoints"`
		Name      string `json:"name"`
		Badge     string `json:"badge"`
	}

	PointsReward struct {
		Points      int    `json:"points"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	PointsInfo struct {
		Rules   map[string]PointsRule `json:"rules"`
		Tiers   map[string]PointsTier `json:"tiers"`
		Rewards []PointsReward        `json:"rewards"`
	}
)
