package handlers

import (
	"errors"

	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/services/conversion"
	"quizadmin/internal/services/settings"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	repo      *repositories.CrudRepository[models.User]
	converter *conversion.Service
	history   repositories.BalanceHistoryRepository
	tokens    repositories.DeviceTokenRepository
}

func NewUserHandler(
	repo *repositories.CrudRepository[models.User],
	converter *conversion.Service,
	history repositories.BalanceHistoryRepository,
	tokens repositories.DeviceTokenRepository,
) *UserHandler {
	return &UserHandler{repo: repo, converter: converter, history: history, tokens: tokens}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Search: c.Query("search"),
		Offset: p.Offset(),
		Limit:  p.PerPage,
	}
	if status := c.Query("status"); status != "" {
		params.Filters = map[string]interface{}{"status": status}
	}

	users, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, users, p)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	user, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	return utils.Success(c, user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req validation.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	user := models.User{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: req.Avatar,
		Status: "active",
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := h.repo.Create(c.Context(), &user); err != nil {
		return utils.InternalError(c, "could not create user")
	}
	return utils.Created(c, user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	var req validation.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	user, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Avatar = req.Avatar
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := h.repo.Update(c.Context(), user); err != nil {
		return utils.InternalError(c, "could not update user")
	}
	return utils.Success(c, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	if err := h.repo.Delete(c.Context(), id); err != nil {
		return repoError(c, err, "user not found")
	}
	return utils.Message(c, "user deleted")
}

// Convert exchanges the user's coins for main balance at the active rate.
func (h *UserHandler) Convert(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	var req validation.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	result, err := h.converter.Convert(c.Context(), id, req.Units)
	if err != nil {
		switch {
		case errors.Is(err, conversion.ErrUserNotFound):
			return utils.NotFound(c, "user not found")
		case errors.Is(err, conversion.ErrInvalidUnits),
			errors.Is(err, conversion.ErrInsufficientCoins):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, settings.ErrNoActiveSetting):
			return utils.BadRequest(c, "no active conversion rate configured")
		default:
			return utils.InternalError(c, "could not convert coins")
		}
	}
	return utils.Success(c, result)
}

func (h *UserHandler) BalanceHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	if _, err := h.repo.GetByID(c.Context(), id); err != nil {
		return repoError(c, err, "user not found")
	}

	p := utils.ParsePagination(c)
	rows, total, err := h.history.ListByUser(c.Context(), id, p.Offset(), p.PerPage)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, rows, p)
}

// RegisterDeviceToken upserts a push token for the user.
func (h *UserHandler) RegisterDeviceToken(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	var req validation.DeviceTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if _, err := h.repo.GetByID(c.Context(), id); err != nil {
		return repoError(c, err, "user not found")
	}

	token := models.DeviceToken{UserID: id, Token: req.Token, Platform: req.Platform}
	if token.Platform == "" {
		token.Platform = "android"
	}
	if err := h.tokens.Register(c.Context(), &token); err != nil {
		return utils.InternalError(c, "could not register device token")
	}
	return utils.Created(c, token)
}
