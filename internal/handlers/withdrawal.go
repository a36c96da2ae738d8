package handlers

import (
	"errors"

	"quizadmin/internal/middleware"
	"quizadmin/internal/models"
	"quizadmin/internal/repositories"
	"quizadmin/internal/services/settings"
	"quizadmin/internal/services/withdrawal"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WithdrawalHandler struct {
	service *withdrawal.Service
	repo    *repositories.CrudRepository[models.WithdrawalRequest]
}

func NewWithdrawalHandler(service *withdrawal.Service, repo *repositories.CrudRepository[models.WithdrawalRequest]) *WithdrawalHandler {
	return &WithdrawalHandler{service: service, repo: repo}
}

func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	params := repositories.ListParams{
		Filters: map[string]interface{}{},
		Offset:  p.Offset(),
		Limit:   p.PerPage,
	}
	if status := c.Query("status"); status != "" {
		params.Filters["status"] = status
	}
	if userID := c.QueryInt("user_id"); userID > 0 {
		params.Filters["user_id"] = userID
	}

	requests, total, err := h.repo.List(c.Context(), params)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, requests, p)
}

func (h *WithdrawalHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid withdrawal request id")
	}
	req, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err, "withdrawal request not found")
	}
	return utils.Success(c, req)
}

// Create opens a withdrawal request on behalf of a user, deducting the
// amount from their balance under the active fee policy.
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	var req validation.WithdrawalCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	created, err := h.service.Create(c.Context(), req.UserID, req.Amount, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrUserNotFound):
			return utils.NotFound(c, "user not found")
		case errors.Is(err, settings.ErrNoActiveSetting):
			return utils.BadRequest(c, "no active withdrawal setting configured")
		case errors.Is(err, withdrawal.ErrInvalidAmount),
			errors.Is(err, withdrawal.ErrBelowMinimum),
			errors.Is(err, withdrawal.ErrInsufficientBalance):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "could not create withdrawal request")
		}
	}
	return utils.Created(c, created)
}

// UpdateStatus moves a request along the lifecycle. Rejection refunds the
// user atomically with the status change.
func (h *WithdrawalHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid withdrawal request id")
	}
	var req validation.WithdrawalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	claims := middleware.ClaimsFrom(c)
	updated, err := h.service.Transition(c.Context(), id, req.Status, claims.AdminID, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrRequestNotFound):
			return utils.NotFound(c, "withdrawal request not found")
		case errors.Is(err, withdrawal.ErrInvalidTransition):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "could not update withdrawal request")
		}
	}
	return utils.Success(c, updated)
}
