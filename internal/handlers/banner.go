package handlers

import (
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type BannerHandler struct {
	repo  *repositories.CrudRepository[models.Banner]
	blobs blobDeleter
}

func NewBannerHandler(repo *repositories.CrudRepository[models.Banner], blobs blobDeleter) *BannerHandler {
	return &BannerHandler{repo: repo, blobs: blobs}
}

func (h *BannerHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Search: c.Query("search"),
		Offset: p.Offset(),
		Limit:  p.PerPage,
	}
	if active := c.Query("is_active"); active != "" {
		params.Filters = map[string]interface{}{"is_active": active == "true"}
	}

	banners, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, banners, p)
}

func (h *BannerHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid banner id")
	}
	banner, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "banner not found")
	}
	return utils.Success(c, banner)
}

func (h *BannerHandler) Create(c *fiber.Ctx) error {
	var req validation.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	banner := models.Banner{
		Title:     req.Title,
		Image:     req.Image,
		TargetURL: req.TargetURL,
		IsActive:  true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if err := h.repo.Create(c.Context(), &banner); err != nil {
		return utils.InternalError(c, "could not create banner")
	}
	return utils.Created(c, banner)
}

func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid banner id")
	}
	var req validation.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	banner, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "banner not found")
	}
	oldImage := banner.Image
	banner.Title = req.Title
	banner.Image = req.Image
	banner.TargetURL = req.TargetURL
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if err := h.repo.Update(c.Context(), banner); err != nil {
		return utils.InternalError(c, "could not update banner")
	}
	if oldImage != banner.Image {
		cleanupBlob(h.blobs, oldImage)
	}
	return utils.Success(c, banner)
}

func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid banner id")
	}
	banner, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "banner not found")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "banner not found")
	}
	cleanupBlob(h.blobs, banner.Image)
	return utils.Message(c, "banner deleted")
}

func (h *BannerHandler) Reorder(c *fiber.Ctx) error {
	var req validation.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if err := h.repo.Reorder(c.Context(), req.Order); err != nil {
		return repoError(c, err, "unknown banner in order")
	}
	return utils.Message(c, "banners reordered")
}
