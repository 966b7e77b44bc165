package points

import (
	"context"
	"time"

	"foodbridge-backend/entities"

	"gorm.io/gorm"
)

type (
	PointsRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.PointsTransaction) error
		GetTransactionByID(ctx context.Context, id string) (*entities.PointsTransaction, error)
		GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.PointsTransaction, int64, error)

		// MarkReversed flips is_reversed on an un-reversed transaction.
		// Returns the number of rows affected; zero means the transaction
		// was already reversed by a concurrent caller.
		MarkReversed(ctx context.Context, id string, reason string) (int64, error)

		SumNonReversed(ctx context.Context, userID string) (int, error)
	}

	pointsRepository struct {
		db *gorm.DB
	}
)

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) CreateTransaction(ctx context.Context, tx *entities.PointsTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *pointsRepository) GetTransactionByID(ctx context.Context, id string) (*entities.PointsTransaction, error) {
	var tx entities.PointsTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *pointsRepository) GetUserTransactions(ctx context.Context, userID string, page, limit int) ([]*entities.PointsTransaction, int64, error) {
	var transactions []*entities.PointsTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.PointsTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

func (r *pointsRepository) MarkReversed(ctx context.Context, id string, reason string) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&entities.PointsTransaction{}).
		Where("id = ? AND is_reversed = ?", id, false).
		Updates(map[string]interface{}{
			"is_reversed":     true,
			"reversal_reason": reason,
			"reversed_at":     now,
		})
	return res.RowsAffected, res.Error
}

func (r *pointsRepository) SumNonReversed(ctx context.Context, userID string) (int, error) {
	var total int
	if err := r.db.WithContext(ctx).
		Model(&entities.PointsTransaction{}).
		Where("user_id = ? AND is_reversed = ?", userID, false).
		Select("COALESCE(SUM(points), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
