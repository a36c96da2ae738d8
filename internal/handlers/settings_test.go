package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizadmin/internal/models"
	"quizadmin/internal/services/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory settings.Store for the coin-conversion table.
type memStore struct {
	rows   map[uint]*models.CoinConversionSetting
	nextID uint
}

func newMemStore() *memStore {
	return &memStore{rows: map[uint]*models.CoinConversionSetting{}, nextID: 1}
}

func (s *memStore) Transact(ctx context.Context, fn func(tx settings.Store[models.CoinConversionSetting, *models.CoinConversionSetting]) error) error {
	snapshot := make(map[uint]*models.CoinConversionSetting, len(s.rows))
	for k, v := range s.rows {
		copied := *v
		snapshot[k] = &copied
	}
	if err := fn(s); err != nil {
		s.rows = snapshot
		return err
	}
	return nil
}

func (s *memStore) Insert(ctx context.Context, rec *models.CoinConversionSetting) error {
	rec.ID = s.nextID
	s.nextID++
	copied := *rec
	s.rows[rec.ID] = &copied
	return nil
}

func (s *memStore) Save(ctx context.Context, rec *models.CoinConversionSetting) error {
	copied := *rec
	s.rows[rec.ID] = &copied
	return nil
}

func (s *memStore) Find(ctx context.Context, id uint) (*models.CoinConversionSetting, error) {
	rec, ok := s.rows[id]
	if !ok {
		return nil, settings.ErrSettingNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *memStore) FindActive(ctx context.Context) (*models.CoinConversionSetting, error) {
	for _, rec := range s.rows {
		if rec.IsActive {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, settings.ErrNoActiveSetting
}

func (s *memStore) DeactivateAll(ctx context.Context) error {
	for _, rec := range s.rows {
		rec.IsActive = false
	}
	return nil
}

func (s *memStore) DeactivateOthers(ctx context.Context, id uint) error {
	for _, rec := range s.rows {
		if rec.ID != id {
			rec.IsActive = false
		}
	}
	return nil
}

func (s *memStore) SetActiveFlag(ctx context.Context, id uint, active bool) error {
	rec, ok := s.rows[id]
	if !ok {
		return settings.ErrSettingNotFound
	}
	rec.IsActive = active
	return nil
}

func (s *memStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, rec := range s.rows {
		if rec.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *memStore) Remove(ctx context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return settings.ErrSettingNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memStore) List(ctx context.Context, offset, limit int) ([]models.CoinConversionSetting, int64, error) {
	out := make([]models.CoinConversionSetting, 0, len(s.rows))
	for _, rec := range s.rows {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func newSettingsApp(store *memStore) *fiber.App {
	service := settings.NewService[models.CoinConversionSetting, *models.CoinConversionSetting](store, nil, "test")
	h := NewCoinConversionSettingsHandler(service)

	app := fiber.New()
	group := app.Group("/api/admin/settings/coin-conversion")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/active", h.GetActive)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Patch("/:id/toggle", h.Toggle)
	group.Delete("/:id", h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	return resp, parsed
}

func seedSetting(store *memStore, coins int64, active bool) uint {
	rec := &models.CoinConversionSetting{
		CoinsRequired:     coins,
		MainBalanceAmount: decimal.NewFromInt(10),
		IsActive:          active,
	}
	store.Insert(context.Background(), rec)
	return rec.ID
}

func TestSettingsCreateActiveDeactivatesExisting(t *testing.T) {
	store := newMemStore()
	first := seedSetting(store, 100, true)
	app := newSettingsApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/settings/coin-conversion/", map[string]interface{}{
		"coins_required":      200,
		"main_balance_amount": "15",
		"is_active":           true,
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.False(t, store.rows[first].IsActive, "previous active row must be deactivated")

	n, _ := store.CountActive(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestSettingsCreateValidationError(t *testing.T) {
	app := newSettingsApp(newMemStore())

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/settings/coin-conversion/", map[string]interface{}{
		"coins_required":      0,
		"main_balance_amount": "0",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "coins_required")
}

func TestSettingsToggleEndpoint(t *testing.T) {
	store := newMemStore()
	a := seedSetting(store, 100, true)
	b := seedSetting(store, 200, false)
	app := newSettingsApp(store)

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/admin/settings/coin-conversion/2/toggle", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, store.rows[a].IsActive)
	assert.True(t, store.rows[b].IsActive)
}

func TestSettingsDeleteLastActiveRejected(t *testing.T) {
	store := newMemStore()
	id := seedSetting(store, 100, true)
	app := newSettingsApp(store)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/admin/settings/coin-conversion/1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, store.rows, id, "row must survive the rejected delete")
}

func TestSettingsGetActiveNotFound(t *testing.T) {
	app := newSettingsApp(newMemStore())

	resp, _ := doJSON(t, app, http.MethodGet, "/api/admin/settings/coin-conversion/active", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
