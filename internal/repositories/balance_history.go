package repositories

import (
	"context"

	"quizadmin/internal/models"

	"gorm.io/gorm"
)

// BalanceHistoryRepository reads the immutable main-balance ledger. Writes
// happen inside the withdrawal and conversion service transactions, never
// here.
type BalanceHistoryRepository interface {
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.BalanceHistory, int64, error)
}

type balanceHistoryRepository struct {
	db *gorm.DB
}

func NewBalanceHistoryRepository(db *gorm.DB) BalanceHistoryRepository {
	return &balanceHistoryRepository{db: db}
}

func (r *balanceHistoryRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.BalanceHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.BalanceHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BalanceHistory
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
