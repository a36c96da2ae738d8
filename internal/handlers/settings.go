package handlers

import (
	"errors"

	"quizadmin/internal/models"
	"quizadmin/internal/services/settings"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler serves one settings table. The apply function parses and
// validates the request body onto a record and reports the requested active
// state; everything else is shared between the two tables.
type SettingsHandler[T any, P settings.Record[T]] struct {
	service *settings.Service[T, P]
	apply   func(c *fiber.Ctx, rec P) (active *bool, errs map[string][]string, ok bool)
	label   string
}

func NewCoinConversionSettingsHandler(service *settings.Service[models.CoinConversionSetting, *models.CoinConversionSetting]) *SettingsHandler[models.CoinConversionSetting, *models.CoinConversionSetting] {
	return &SettingsHandler[models.CoinConversionSetting, *models.CoinConversionSetting]{
		service: service,
		label:   "conversion setting",
		apply: func(c *fiber.Ctx, rec *models.CoinConversionSetting) (*bool, map[string][]string, bool) {
			var req validation.CoinConversionSettingRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, nil, false
			}
			if errs := validation.Struct(&req); errs != nil {
				return nil, errs, true
			}
			if !req.MainBalanceAmount.IsPositive() {
				return nil, map[string][]string{"main_balance_amount": {"must be greater than 0"}}, true
			}
			rec.CoinsRequired = req.CoinsRequired
			rec.MainBalanceAmount = req.MainBalanceAmount
			rec.Description = req.Description
			return req.IsActive, nil, true
		},
	}
}

func NewWithdrawalSettingsHandler(service *settings.Service[models.WithdrawalSetting, *models.WithdrawalSetting]) *SettingsHandler[models.WithdrawalSetting, *models.WithdrawalSetting] {
	return &SettingsHandler[models.WithdrawalSetting, *models.WithdrawalSetting]{
		service: service,
		label:   "withdrawal setting",
		apply: func(c *fiber.Ctx, rec *models.WithdrawalSetting) (*bool, map[string][]string, bool) {
			var req validation.WithdrawalSettingRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, nil, false
			}
			if errs := validation.Struct(&req); errs != nil {
				return nil, errs, true
			}
			errs := map[string][]string{}
			if !req.MinimumAmount.IsPositive() {
				errs["minimum_amount"] = append(errs["minimum_amount"], "must be greater than 0")
			}
			if req.FeePercentage.IsNegative() {
				errs["fee_percentage"] = append(errs["fee_percentage"], "must not be negative")
			}
			if req.FeeFixed.IsNegative() {
				errs["fee_fixed"] = append(errs["fee_fixed"], "must not be negative")
			}
			if len(errs) > 0 {
				return nil, errs, true
			}
			rec.MinimumAmount = req.MinimumAmount
			rec.FeePercentage = req.FeePercentage
			rec.FeeFixed = req.FeeFixed
			rec.Description = req.Description
			return req.IsActive, nil, true
		},
	}
}

func (h *SettingsHandler[T, P]) List(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	rows, total, err := h.service.List(c.Context(), p.Offset(), p.PerPage)
	if err != nil {
		return utils.InternalError(c, "database error")
	}
	p.Total = total
	return utils.Paginated(c, rows, p)
}

func (h *SettingsHandler[T, P]) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid "+h.label+" id")
	}
	rec, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.Success(c, rec)
}

func (h *SettingsHandler[T, P]) GetActive(c *fiber.Ctx) error {
	rec, err := h.service.GetActive(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.Success(c, rec)
}

func (h *SettingsHandler[T, P]) Create(c *fiber.Ctx) error {
	rec := P(new(T))
	active, errs, ok := h.apply(c, rec)
	if !ok {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs != nil {
		return utils.ValidationError(c, errs)
	}

	wantActive := active != nil && *active
	if err := h.service.Create(c.Context(), rec, wantActive); err != nil {
		return utils.InternalError(c, "could not create "+h.label)
	}
	return utils.Created(c, rec)
}

func (h *SettingsHandler[T, P]) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid "+h.label+" id")
	}
	rec, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	active, errs, ok := h.apply(c, rec)
	if !ok {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs != nil {
		return utils.ValidationError(c, errs)
	}
	if err := h.service.Update(c.Context(), rec, active); err != nil {
		return h.serviceError(c, err)
	}
	return utils.Success(c, rec)
}

func (h *SettingsHandler[T, P]) Toggle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid "+h.label+" id")
	}
	rec, err := h.service.Toggle(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.Success(c, rec)
}

func (h *SettingsHandler[T, P]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid "+h.label+" id")
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return utils.Message(c, h.label+" deleted")
}

func (h *SettingsHandler[T, P]) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, settings.ErrSettingNotFound):
		return utils.NotFound(c, h.label+" not found")
	case errors.Is(err, settings.ErrNoActiveSetting):
		return utils.NotFound(c, "no active "+h.label)
	case errors.Is(err, settings.ErrLastActiveSetting):
		return utils.BadRequest(c, "cannot delete the only active "+h.label)
	default:
		return utils.InternalError(c, "database error")
	}
}
