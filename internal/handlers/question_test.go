package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"quizadmin/internal/models"
	"quizadmin/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuestionStore struct {
	rows   map[uint]*models.Question
	nextID uint
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{rows: map[uint]*models.Question{}, nextID: 1}
}

func (s *fakeQuestionStore) Create(ctx context.Context, rec *models.Question) error {
	rec.ID = s.nextID
	s.nextID++
	copied := *rec
	s.rows[rec.ID] = &copied
	return nil
}

func (s *fakeQuestionStore) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	rec, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeQuestionStore) Update(ctx context.Context, rec *models.Question) error {
	copied := *rec
	s.rows[rec.ID] = &copied
	return nil
}

func (s *fakeQuestionStore) Delete(ctx context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeQuestionStore) List(ctx context.Context, p repositories.ListParams) ([]models.Question, int64, error) {
	out := make([]models.Question, 0, len(s.rows))
	for _, rec := range s.rows {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (s *fakeQuestionStore) Reorder(ctx context.Context, ids []uint) error {
	for _, id := range ids {
		if _, ok := s.rows[id]; !ok {
			return fmt.Errorf("%w: id %d", repositories.ErrNotFound, id)
		}
	}
	for i, id := range ids {
		s.rows[id].Serial = i + 1
	}
	return nil
}

type fakeQuizChecker struct {
	known map[uint]bool
}

func (q *fakeQuizChecker) Exists(ctx context.Context, id uint) (bool, error) {
	return q.known[id], nil
}

func newQuestionApp(store *fakeQuestionStore) *fiber.App {
	h := NewQuestionHandler(store, &fakeQuizChecker{known: map[uint]bool{1: true}}, nil)
	app := fiber.New()
	group := app.Group("/api/admin/questions")
	group.Post("/", h.Create)
	group.Post("/import", h.Import)
	group.Put("/reorder", h.Reorder)
	return app
}

func questionItem(text string) map[string]interface{} {
	return map[string]interface{}{
		"text":           text,
		"option_a":       "a",
		"option_b":       "b",
		"option_c":       "c",
		"option_d":       "d",
		"correct_option": 1,
		"coins":          5,
	}
}

func TestImportAllValidReturns201(t *testing.T) {
	store := newFakeQuestionStore()
	app := newQuestionApp(store)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/questions/import", map[string]interface{}{
		"quiz_id":   1,
		"questions": []interface{}{questionItem("q1"), questionItem("q2")},
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["created"], 2)
	assert.Len(t, store.rows, 2)
}

func TestImportPartialSuccessReturns207(t *testing.T) {
	store := newFakeQuestionStore()
	app := newQuestionApp(store)

	bad := questionItem("")
	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/questions/import", map[string]interface{}{
		"quiz_id":   1,
		"questions": []interface{}{questionItem("q1"), bad, questionItem("q3")},
	})

	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Len(t, data["created"], 2, "valid items must still be created")
	assert.Len(t, store.rows, 2)

	errs := data["errors"].(map[string]interface{})
	require.Contains(t, errs, "1", "errors must be keyed by item index")
	itemErrs := errs["1"].(map[string]interface{})
	assert.Contains(t, itemErrs, "text")
}

func TestImportUnknownQuizRejected(t *testing.T) {
	app := newQuestionApp(newFakeQuestionStore())

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/questions/import", map[string]interface{}{
		"quiz_id":   99,
		"questions": []interface{}{questionItem("q1")},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReorderAssignsSerialsByPosition(t *testing.T) {
	store := newFakeQuestionStore()
	for i := 0; i < 3; i++ {
		q := models.Question{QuizID: 1, Text: fmt.Sprintf("q%d", i+1)}
		require.NoError(t, store.Create(context.Background(), &q))
	}
	app := newQuestionApp(store)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/admin/questions/reorder", map[string]interface{}{
		"order": []uint{3, 1, 2},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, store.rows[3].Serial)
	assert.Equal(t, 2, store.rows[1].Serial)
	assert.Equal(t, 3, store.rows[2].Serial)
}

func TestReorderUnknownIDAborts(t *testing.T) {
	store := newFakeQuestionStore()
	q := models.Question{QuizID: 1, Text: "q1", Serial: 7}
	require.NoError(t, store.Create(context.Background(), &q))
	app := newQuestionApp(store)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/admin/questions/reorder", map[string]interface{}{
		"order": []uint{1, 42},
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 7, store.rows[1].Serial, "no serial may change when the reorder aborts")
}
