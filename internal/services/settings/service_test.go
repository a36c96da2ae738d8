package settings

import (
	"context"
	"errors"
	"testing"

	"quizadmin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversionStore = Store[models.CoinConversionSetting, *models.CoinConversionSetting]

var errForced = errors.New("forced failure")

// fakeStore keeps rows in a map and rolls the map back when a transaction
// function fails, mirroring the commit/abort behavior of the real store.
type fakeStore struct {
	rows   map[uint]models.CoinConversionSetting
	nextID uint
	failOn string
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[uint]models.CoinConversionSetting)}
}

func (s *fakeStore) clone() map[uint]models.CoinConversionSetting {
	out := make(map[uint]models.CoinConversionSetting, len(s.rows))
	for k, v := range s.rows {
		out[k] = v
	}
	return out
}

func (s *fakeStore) Transact(ctx context.Context, fn func(tx conversionStore) error) error {
	snapshot := s.clone()
	savedID := s.nextID
	if err := fn(s); err != nil {
		s.rows = snapshot
		s.nextID = savedID
		return err
	}
	return nil
}

func (s *fakeStore) Insert(ctx context.Context, rec *models.CoinConversionSetting) error {
	if s.failOn == "Insert" {
		return errForced
	}
	s.nextID++
	rec.ID = s.nextID
	s.rows[rec.ID] = *rec
	return nil
}

func (s *fakeStore) Save(ctx context.Context, rec *models.CoinConversionSetting) error {
	if s.failOn == "Save" {
		return errForced
	}
	if _, ok := s.rows[rec.ID]; !ok {
		return ErrSettingNotFound
	}
	s.rows[rec.ID] = *rec
	return nil
}

func (s *fakeStore) Find(ctx context.Context, id uint) (*models.CoinConversionSetting, error) {
	rec, ok := s.rows[id]
	if !ok {
		return nil, ErrSettingNotFound
	}
	return &rec, nil
}

func (s *fakeStore) FindActive(ctx context.Context) (*models.CoinConversionSetting, error) {
	for _, rec := range s.rows {
		if rec.IsActive {
			out := rec
			return &out, nil
		}
	}
	return nil, ErrNoActiveSetting
}

func (s *fakeStore) DeactivateAll(ctx context.Context) error {
	for id, rec := range s.rows {
		rec.IsActive = false
		s.rows[id] = rec
	}
	return nil
}

func (s *fakeStore) DeactivateOthers(ctx context.Context, id uint) error {
	for rowID, rec := range s.rows {
		if rowID == id {
			continue
		}
		rec.IsActive = false
		s.rows[rowID] = rec
	}
	return nil
}

func (s *fakeStore) SetActiveFlag(ctx context.Context, id uint, active bool) error {
	if s.failOn == "SetActiveFlag" {
		return errForced
	}
	rec, ok := s.rows[id]
	if !ok {
		return ErrSettingNotFound
	}
	rec.IsActive = active
	s.rows[id] = rec
	return nil
}

func (s *fakeStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, rec := range s.rows {
		if rec.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) Remove(ctx context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return ErrSettingNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeStore) List(ctx context.Context, offset, limit int) ([]models.CoinConversionSetting, int64, error) {
	var out []models.CoinConversionSetting
	for _, rec := range s.rows {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStore) activeCount() int {
	var n int
	for _, rec := range s.rows {
		if rec.IsActive {
			n++
		}
	}
	return n
}

type fakeCache struct {
	sets    int
	deletes int
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.deletes++
	return nil
}

func newConversion(coins int64) *models.CoinConversionSetting {
	return &models.CoinConversionSetting{
		CoinsRequired:     coins,
		MainBalanceAmount: decimal.NewFromInt(10),
	}
}

func TestSingleActiveInvariantHoldsAfterEveryOperation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	assert.LessOrEqual(t, store.activeCount(), 1)

	require.NoError(t, svc.Create(ctx, newConversion(200), true))
	assert.Equal(t, 1, store.activeCount(), "second create-as-active must displace the first")

	require.NoError(t, svc.Create(ctx, newConversion(300), false))
	assert.Equal(t, 1, store.activeCount())

	// Promote row 3 via update-to-active.
	rec, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	active := true
	require.NoError(t, svc.Update(ctx, rec, &active))
	assert.Equal(t, 1, store.activeCount())
	assert.True(t, store.rows[3].IsActive)
	assert.False(t, store.rows[2].IsActive)

	// Toggle row 1 on.
	_, err = svc.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.activeCount())
	assert.True(t, store.rows[1].IsActive)
}

func TestToggleActiveToInactiveTouchesNoOtherRow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), false))
	require.NoError(t, svc.Create(ctx, newConversion(200), true))

	rec, err := svc.Toggle(ctx, 2)
	require.NoError(t, err)
	assert.False(t, rec.IsActive)
	assert.Equal(t, 0, store.activeCount(), "zero active rows is a legal state")
	assert.False(t, store.rows[1].IsActive, "sibling must be untouched")
}

func TestDeleteSoleActiveSettingIsRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	require.NoError(t, svc.Create(ctx, newConversion(200), false))

	err := svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, ErrLastActiveSetting)
	assert.Len(t, store.rows, 2, "table must be unchanged")
	assert.True(t, store.rows[1].IsActive)

	// Activating another row first unblocks the delete.
	_, err = svc.Toggle(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1))
	assert.Len(t, store.rows, 1)
}

func TestDeleteInactiveRowAllowed(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	require.NoError(t, svc.Create(ctx, newConversion(200), false))

	require.NoError(t, svc.Delete(ctx, 2))
	assert.Len(t, store.rows, 1)
}

func TestAbortedActivationLeavesNoPartialDeactivation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))

	store.failOn = "Insert"
	err := svc.Create(ctx, newConversion(200), true)
	assert.ErrorIs(t, err, errForced)
	assert.True(t, store.rows[1].IsActive, "abort must not leave the old row deactivated")
	assert.Len(t, store.rows, 1)

	store.failOn = "SetActiveFlag"
	require.NoError(t, svc.Create(ctx, newConversion(300), false))
	store.failOn = "SetActiveFlag"
	_, err = svc.Toggle(ctx, 2)
	assert.ErrorIs(t, err, errForced)
	assert.True(t, store.rows[1].IsActive)
	assert.False(t, store.rows[2].IsActive)
}

func TestUpdateWithoutActiveFieldLeavesSiblingsAlone(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	require.NoError(t, svc.Create(ctx, newConversion(200), false))

	rec, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	rec.CoinsRequired = 250
	require.NoError(t, svc.Update(ctx, rec, nil))

	assert.True(t, store.rows[1].IsActive, "active row untouched")
	assert.False(t, store.rows[2].IsActive, "absent flag must not activate the row")
	assert.Equal(t, int64(250), store.rows[2].CoinsRequired)
}

func TestGetActiveDistinguishesNotConfigured(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")

	_, err := svc.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSetting)

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	rec, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.CoinsRequired)
}

func TestMutationsInvalidateActiveCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cache := &fakeCache{}
	svc := NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, cache, "test")

	require.NoError(t, svc.Create(ctx, newConversion(100), true))
	assert.Equal(t, 1, cache.deletes)

	_, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.deletes)
}
