package repositories

import (
	"context"

	"quizadmin/internal/models"

	"gorm.io/gorm"
)

// DeviceTokenRepository manages push-delivery tokens. Tokens the push
// transport reports as unknown are deleted through DeleteByToken.
type DeviceTokenRepository interface {
	Register(ctx context.Context, token *models.DeviceToken) error
	ListAll(ctx context.Context) ([]models.DeviceToken, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

type deviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Register upserts by token string so a device switching accounts moves its
// token to the new user instead of failing the unique index.
func (r *deviceTokenRepository) Register(ctx context.Context, token *models.DeviceToken) error {
	var existing models.DeviceToken
	err := r.db.WithContext(ctx).Where("token = ?", token.Token).First(&existing).Error
	if err == nil {
		existing.UserID = token.UserID
		existing.Platform = token.Platform
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *deviceTokenRepository) ListAll(ctx context.Context) ([]models.DeviceToken, error) {
	var tokens []models.DeviceToken
	err := r.db.WithContext(ctx).Find(&tokens).Error
	return tokens, err
}

func (r *deviceTokenRepository) ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.DeviceToken, error) {
	var tokens []models.DeviceToken
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&tokens).Error
	return tokens, err
}

func (r *deviceTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Unscoped().Where("token = ?", token).Delete(&models.DeviceToken{}).Error
}
