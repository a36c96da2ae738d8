package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListParams drives list queries: free-text search over the repository's
// search columns, exact-match filters, and offset pagination.
type ListParams struct {
	Search  string
	Filters map[string]interface{}
	Offset  int
	Limit   int
}

// CrudRepository implements the uniform create/read/update/delete/list
// pattern shared by every catalog entity. Entity-specific repositories are
// constructed with their own search columns and default ordering.
type CrudRepository[T any] struct {
	db            *gorm.DB
	searchColumns []string
	defaultOrder  string
}

func NewCrudRepository[T any](db *gorm.DB, searchColumns []string, defaultOrder string) *CrudRepository[T] {
	return &CrudRepository[T]{
		db:            db,
		searchColumns: searchColumns,
		defaultOrder:  defaultOrder,
	}
}

func (r *CrudRepository[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *CrudRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	rec := new(T)
	err := r.db.WithContext(ctx).First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *CrudRepository[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *CrudRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CrudRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of records plus the total count for the same
// search/filter combination.
func (r *CrudRepository[T]) List(ctx context.Context, p ListParams) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))

	if p.Search != "" && len(r.searchColumns) > 0 {
		clauses := make([]string, len(r.searchColumns))
		args := make([]interface{}, len(r.searchColumns))
		for i, col := range r.searchColumns {
			clauses[i] = col + " ILIKE ?"
			args[i] = "%" + p.Search + "%"
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	for col, val := range p.Filters {
		q = q.Where(col+" = ?", val)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if r.defaultOrder != "" {
		q = q.Order(r.defaultOrder)
	}
	if p.Limit > 0 {
		q = q.Offset(p.Offset).Limit(p.Limit)
	}

	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// Reorder rewrites each record's serial to its index+1 in the given id
// sequence. All updates run in one transaction so a concurrent reader never
// observes a partially renumbered list; an unknown id aborts the whole call.
func (r *CrudRepository[T]) Reorder(ctx context.Context, ids []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(new(T)).Where("id = ?", id).Update("serial", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: id %d", ErrNotFound, id)
			}
		}
		return nil
	})
}
