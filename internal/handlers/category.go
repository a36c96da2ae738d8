package handlers

import (
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	repo  *repositories.CrudRepository[models.Category]
	blobs blobDeleter
}

func NewCategoryHandler(repo *repositories.CrudRepository[models.Category], blobs blobDeleter) *CategoryHandler {
	return &CategoryHandler{repo: repo, blobs: blobs}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Search: c.Query("search"),
		Offset: p.Offset(),
		Limit:  p.PerPage,
	}
	if active := c.Query("is_active"); active != "" {
		params.Filters = map[string]interface{}{"is_active": active == "true"}
	}

	categories, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, categories, p)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid category id")
	}
	category, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "category not found")
	}
	return utils.Success(c, category)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req validation.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	category := models.Category{
		Name:     req.Name,
		Image:    req.Image,
		IsActive: true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.repo.Create(c.Context(), &category); err != nil {
		return utils.InternalError(c, "could not create category")
	}
	return utils.Created(c, category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid category id")
	}
	var req validation.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	category, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "category not found")
	}
	oldImage := category.Image
	category.Name = req.Name
	category.Image = req.Image
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.repo.Update(c.Context(), category); err != nil {
		return utils.InternalError(c, "could not update category")
	}
	if oldImage != category.Image {
		cleanupBlob(h.blobs, oldImage)
	}
	return utils.Success(c, category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid category id")
	}
	category, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "category not found")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "category not found")
	}
	cleanupBlob(h.blobs, category.Image)
	return utils.Message(c, "category deleted")
}

func (h *CategoryHandler) Reorder(c *fiber.Ctx) error {
	var req validation.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if err := h.repo.Reorder(c.Context(), req.Order); err != nil {
		return repoError(c, err, "unknown category in order")
	}
	return utils.Message(c, "categories reordered")
}
