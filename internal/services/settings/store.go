package settings

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// gormStore is the postgres-backed Store. All flag queries go through the
// is_active column; Transact opens a serializable transaction so concurrent
// admin actions cannot commit two active rows.
type gormStore[T any, P Record[T]] struct {
	db *gorm.DB
}

// NewGormStore builds a Store over the given database handle.
func NewGormStore[T any, P Record[T]](db *gorm.DB) Store[T, P] {
	return &gormStore[T, P]{db: db}
}

func (s *gormStore[T, P]) Transact(ctx context.Context, fn func(tx Store[T, P]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore[T, P]{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (s *gormStore[T, P]) Insert(ctx context.Context, rec P) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore[T, P]) Save(ctx context.Context, rec P) error {
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *gormStore[T, P]) Find(ctx context.Context, id uint) (P, error) {
	rec := P(new(T))
	err := s.db.WithContext(ctx).First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormStore[T, P]) FindActive(ctx context.Context) (P, error) {
	rec := P(new(T))
	err := s.db.WithContext(ctx).Where("is_active = ?", true).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSetting
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *gormStore[T, P]) DeactivateAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(new(T)).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (s *gormStore[T, P]) DeactivateOthers(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(new(T)).
		Where("id <> ? AND is_active = ?", id, true).
		Update("is_active", false).Error
}

func (s *gormStore[T, P]) SetActiveFlag(ctx context.Context, id uint, active bool) error {
	return s.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (s *gormStore[T, P]) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(new(T)).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (s *gormStore[T, P]) Remove(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

func (s *gormStore[T, P]) List(ctx context.Context, offset, limit int) ([]T, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []T
	q := s.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
