package handlers

import (
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	repo       *repositories.CrudRepository[models.Quiz]
	categories *repositories.CrudRepository[models.Category]
	blobs      blobDeleter
}

func NewQuizHandler(repo *repositories.CrudRepository[models.Quiz], categories *repositories.CrudRepository[models.Category], blobs blobDeleter) *QuizHandler {
	return &QuizHandler{repo: repo, categories: categories, blobs: blobs}
}

func (h *QuizHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Search:  c.Query("search"),
		Filters: map[string]interface{}{},
		Offset:  p.Offset(),
		Limit:   p.PerPage,
	}
	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		params.Filters["category_id"] = categoryID
	}
	if active := c.Query("is_active"); active != "" {
		params.Filters["is_active"] = active == "true"
	}

	quizzes, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, quizzes, p)
}

func (h *QuizHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid quiz id")
	}
	quiz, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "quiz not found")
	}
	return utils.Success(c, quiz)
}

func (h *QuizHandler) Create(c *fiber.Ctx) error {
	var req validation.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if ok, err := h.categories.Exists(c.Context(), req.CategoryID); err != nil {
		return utils.InternalError(c, "database error")
	} else if !ok {
		return utils.BadRequest(c, "category does not exist")
	}

	quiz := models.Quiz{
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Image:       req.Image,
		EntryCoins:  req.EntryCoins,
		PrizeCoins:  req.PrizeCoins,
		IsActive:    true,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if err := h.repo.Create(c.Context(), &quiz); err != nil {
		return utils.InternalError(c, "could not create quiz")
	}
	return utils.Created(c, quiz)
}

func (h *QuizHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid quiz id")
	}
	var req validation.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	quiz, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "quiz not found")
	}
	if req.CategoryID != quiz.CategoryID {
		if ok, err := h.categories.Exists(c.Context(), req.CategoryID); err != nil {
			return utils.InternalError(c, "database error")
		} else if !ok {
			return utils.BadRequest(c, "category does not exist")
		}
	}

	oldImage := quiz.Image
	quiz.Title = req.Title
	quiz.CategoryID = req.CategoryID
	quiz.Description = req.Description
	quiz.Image = req.Image
	quiz.EntryCoins = req.EntryCoins
	quiz.PrizeCoins = req.PrizeCoins
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if err := h.repo.Update(c.Context(), quiz); err != nil {
		return utils.InternalError(c, "could not update quiz")
	}
	if oldImage != quiz.Image {
		cleanupBlob(h.blobs, oldImage)
	}
	return utils.Success(c, quiz)
}

func (h *QuizHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid quiz id")
	}
	quiz, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "quiz not found")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "quiz not found")
	}
	cleanupBlob(h.blobs, quiz.Image)
	return utils.Message(c, "quiz deleted")
}

func (h *QuizHandler) Reorder(c *fiber.Ctx) error {
	var req validation.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if err := h.repo.Reorder(c.Context(), req.Order); err != nil {
		return repoError(c, err, "unknown quiz in order")
	}
	return utils.Message(c, "quizzes reordered")
}
