package user

import (
	"context"
	"time"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserIDsByRole(ctx context.Context, role string) ([]*entities.User, error)

		// Points balance mutations. All use single-statement atomic
		// increments; callers never load-mutate-save balances.
		IncrementEarnedPoints(ctx context.Context, userID string, points int) error
		DecrementRedeemablePoints(ctx context.Context, userID string, points int) error
		ApplyReversalDelta(ctx context.Context, userID string, redeemableDelta, earnedDelta, redeemedDelta int) error

		GetLeaderboard(ctx context.Context, limit int) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserIDsByRole(ctx context.Context, role string) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("role = ? AND is_active = ?", role, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) IncrementEarnedPoints(ctx context.Context, userID string, points int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"redeemable_points":   gorm.Expr("redeemable_points + ?", points),
			"total_points_earned": gorm.Expr("total_points_earned + ?", points),
			"points_last_updated": now,
		}).Error
}

func (r *userRepository) DecrementRedeemablePoints(ctx context.Context, userID string, points int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"redeemable_points":     gorm.Expr("redeemable_points - ?", points),
			"total_points_redeemed": gorm.Expr("total_points_redeemed + ?", points),
			"points_last_updated":   now,
		}).Error
}

func (r *userRepository) ApplyReversalDelta(ctx context.Context, userID string, redeemableDelta, earnedDelta, redeemedDelta int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"redeemable_points":     gorm.Expr("redeemable_points + ?", redeemableDelta),
			"total_points_earned":   gorm.Expr("total_points_earned + ?", earnedDelta),
			"total_points_redeemed": gorm.Expr("total_points_redeemed + ?", redeemedDelta),
			"points_last_updated":   now,
		}).Error
}

func (r *userRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Where("redeemable_points > ?", 0).
		Order("redeemable_points DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
