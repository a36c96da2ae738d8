package withdrawal

import (
	"context"
	"database/sql"
	"errors"

	"quizadmin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore builds the postgres-backed Store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (s *gormStore) GetUserForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *gormStore) InsertHistory(ctx context.Context, entry *models.BalanceHistory) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *gormStore) GetRequest(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	err := s.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *gormStore) InsertRequest(ctx context.Context, req *models.WithdrawalRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *gormStore) SaveRequest(ctx context.Context, req *models.WithdrawalRequest) error {
	return s.db.WithContext(ctx).Save(req).Error
}
