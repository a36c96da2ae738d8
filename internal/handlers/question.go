package handlers

import (
	"context"
	"fmt"

	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionStore is the persistence surface the handler needs; satisfied by
// the question CrudRepository.
type QuestionStore interface {
	Create(ctx context.Context, rec *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, rec *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, p repositories.ListParams) ([]models.Question, int64, error)
	Reorder(ctx context.Context, ids []uint) error
}

// QuizChecker verifies quiz foreign keys before question writes.
type QuizChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type QuestionHandler struct {
	repo    QuestionStore
	quizzes QuizChecker
	blobs   blobDeleter
}

func NewQuestionHandler(repo QuestionStore, quizzes QuizChecker, blobs blobDeleter) *QuestionHandler {
	return &QuestionHandler{repo: repo, quizzes: quizzes, blobs: blobs}
}

func (h *QuestionHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Search:  c.Query("search"),
		Filters: map[string]interface{}{},
		Offset:  p.Offset(),
		Limit:   p.PerPage,
	}
	if quizID := c.QueryInt("quiz_id"); quizID > 0 {
		params.Filters["quiz_id"] = quizID
	}

	questions, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, questions, p)
}

func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid question id")
	}
	question, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "question not found")
	}
	return utils.Success(c, question)
}

func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	var req validation.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if ok, err := h.quizzes.Exists(c.Context(), req.QuizID); err != nil {
		return utils.InternalError(c, "database error")
	} else if !ok {
		return utils.BadRequest(c, "quiz does not exist")
	}

	question := models.Question{
		QuizID:        req.QuizID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		Coins:         req.Coins,
		Image:         req.Image,
	}
	if err := h.repo.Create(c.Context(), &question); err != nil {
		return utils.InternalError(c, "could not create question")
	}
	return utils.Created(c, question)
}

func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid question id")
	}
	var req validation.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	question, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "question not found")
	}
	if req.QuizID != question.QuizID {
		if ok, err := h.quizzes.Exists(c.Context(), req.QuizID); err != nil {
			return utils.InternalError(c, "database error")
		} else if !ok {
			return utils.BadRequest(c, "quiz does not exist")
		}
	}

	oldImage := question.Image
	question.QuizID = req.QuizID
	question.Text = req.Text
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectOption = req.CorrectOption
	question.Coins = req.Coins
	question.Image = req.Image
	if err := h.repo.Update(c.Context(), question); err != nil {
		return utils.InternalError(c, "could not update question")
	}
	if oldImage != question.Image {
		cleanupBlob(h.blobs, oldImage)
	}
	return utils.Success(c, question)
}

func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid question id")
	}
	question, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "question not found")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "question not found")
	}
	cleanupBlob(h.blobs, question.Image)
	return utils.Message(c, "question deleted")
}

func (h *QuestionHandler) Reorder(c *fiber.Ctx) error {
	var req validation.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if err := h.repo.Reorder(c.Context(), req.Order); err != nil {
		return repoError(c, err, "unknown question in order")
	}
	return utils.Message(c, "questions reordered")
}

// Import bulk-creates questions for one quiz. Valid items are created even
// when others fail; a mixed outcome returns 207 with per-index errors.
func (h *QuestionHandler) Import(c *fiber.Ctx) error {
	var req validation.QuestionImportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if ok, err := h.quizzes.Exists(c.Context(), req.QuizID); err != nil {
		return utils.InternalError(c, "database error")
	} else if !ok {
		return utils.BadRequest(c, "quiz does not exist")
	}

	created := make([]models.Question, 0, len(req.Questions))
	itemErrors := map[string]interface{}{}
	for i, item := range req.Questions {
		if errs := validation.Struct(&item); errs != nil {
			itemErrors[fmt.Sprint(i)] = errs
			continue
		}
		question := models.Question{
			QuizID:        req.QuizID,
			Text:          item.Text,
			OptionA:       item.OptionA,
			OptionB:       item.OptionB,
			OptionC:       item.OptionC,
			OptionD:       item.OptionD,
			CorrectOption: item.CorrectOption,
			Coins:         item.Coins,
		}
		if err := h.repo.Create(c.Context(), &question); err != nil {
			itemErrors[fmt.Sprint(i)] = map[string][]string{"_": {"could not create question"}}
			continue
		}
		created = append(created, question)
	}

	body := fiber.Map{
		"success": len(itemErrors) == 0,
		"data":    fiber.Map{"created": created, "errors": itemErrors},
	}
	if len(itemErrors) == 0 {
		return c.Status(fiber.StatusCreated).JSON(body)
	}
	return c.Status(fiber.StatusMultiStatus).JSON(body)
}
