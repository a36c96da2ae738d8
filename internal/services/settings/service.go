// Package settings enforces the single-active invariant shared by the
// coin-conversion and withdrawal settings tables: within one table at most
// one row has is_active = true after any operation commits. Every call path
// that can flip the flag (create-as-active, update-to-active, toggle) routes
// through this service.
package settings

import (
	"context"

	"quizadmin/internal/models"
)

// Record constrains the service to pointer types implementing the
// settings-row contract.
type Record[T any] interface {
	*T
	models.SettingRecord
}

// Store is the persistence surface the service orchestrates. Transact runs
// fn inside one serializable transaction; the tx store passed to fn is only
// valid for the duration of the call.
type Store[T any, P Record[T]] interface {
	Transact(ctx context.Context, fn func(tx Store[T, P]) error) error
	Insert(ctx context.Context, rec P) error
	Save(ctx context.Context, rec P) error
	Find(ctx context.Context, id uint) (P, error)
	FindActive(ctx context.Context) (P, error)
	DeactivateAll(ctx context.Context) error
	DeactivateOthers(ctx context.Context, id uint) error
	SetActiveFlag(ctx context.Context, id uint, active bool) error
	CountActive(ctx context.Context) (int64, error)
	Remove(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]T, int64, error)
}

// Cache holds the active row per table; invalidated on every mutation.
// Cache failures degrade to store reads, they never fail a request.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Service implements the single-active toggle protocol for one settings
// table.
type Service[T any, P Record[T]] struct {
	store    Store[T, P]
	cache    Cache
	cacheKey string
}

func NewService[T any, P Record[T]](store Store[T, P], cache Cache, cacheKey string) *Service[T, P] {
	return &Service[T, P]{store: store, cache: cache, cacheKey: cacheKey}
}

// Create inserts a new settings row. When wantActive is set, every existing
// row is deactivated first; deactivate-then-insert runs in one transaction
// so no interleaving leaves two rows active.
func (s *Service[T, P]) Create(ctx context.Context, rec P, wantActive bool) error {
	if !wantActive {
		rec.SetActive(false)
		return s.store.Insert(ctx, rec)
	}
	err := s.store.Transact(ctx, func(tx Store[T, P]) error {
		if err := tx.DeactivateAll(ctx); err != nil {
			return err
		}
		rec.SetActive(true)
		return tx.Insert(ctx, rec)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update persists the row's fields. active is tri-state: nil leaves the flag
// as it is on rec, true deactivates all other rows first, false flips only
// this row.
func (s *Service[T, P]) Update(ctx context.Context, rec P, active *bool) error {
	err := s.store.Transact(ctx, func(tx Store[T, P]) error {
		if _, err := tx.Find(ctx, rec.PrimaryKey()); err != nil {
			return err
		}
		if active != nil {
			if *active {
				if err := tx.DeactivateOthers(ctx, rec.PrimaryKey()); err != nil {
					return err
				}
			}
			rec.SetActive(*active)
		}
		return tx.Save(ctx, rec)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Toggle flips the row's active state. Inactive -> Active deactivates every
// currently-active row in the same transaction; Active -> Inactive touches
// no other row, so a table may legitimately end up with zero active rows.
func (s *Service[T, P]) Toggle(ctx context.Context, id uint) (P, error) {
	var rec P
	err := s.store.Transact(ctx, func(tx Store[T, P]) error {
		var err error
		rec, err = tx.Find(ctx, id)
		if err != nil {
			return err
		}
		if rec.Active() {
			if err := tx.SetActiveFlag(ctx, id, false); err != nil {
				return err
			}
			rec.SetActive(false)
			return nil
		}
		if err := tx.DeactivateAll(ctx); err != nil {
			return err
		}
		if err := tx.SetActiveFlag(ctx, id, true); err != nil {
			return err
		}
		rec.SetActive(true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return rec, nil
}

// Delete removes a row, refusing to remove the sole active one so the system
// is never left unconfigured by a single click.
func (s *Service[T, P]) Delete(ctx context.Context, id uint) error {
	err := s.store.Transact(ctx, func(tx Store[T, P]) error {
		rec, err := tx.Find(ctx, id)
		if err != nil {
			return err
		}
		if rec.Active() {
			n, err := tx.CountActive(ctx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return ErrLastActiveSetting
			}
		}
		return tx.Remove(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Get returns one row by id.
func (s *Service[T, P]) Get(ctx context.Context, id uint) (P, error) {
	return s.store.Find(ctx, id)
}

// GetActive returns the single active row or ErrNoActiveSetting.
func (s *Service[T, P]) GetActive(ctx context.Context) (P, error) {
	if s.cache != nil {
		rec := P(new(T))
		if found, err := s.cache.Get(ctx, s.cacheKey, rec); err == nil && found {
			return rec, nil
		}
	}
	rec, err := s.store.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, s.cacheKey, rec)
	}
	return rec, nil
}

// List returns one page of rows plus the total count.
func (s *Service[T, P]) List(ctx context.Context, offset, limit int) ([]T, int64, error) {
	return s.store.List(ctx, offset, limit)
}

func (s *Service[T, P]) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, s.cacheKey)
	}
}
