// Package handlers contains the HTTP layer: request parsing, validation,
// service calls, and the JSON envelope. Business rules live in the services.
package handlers

import (
	"errors"

	"quizadmin/internal/middleware"
	"quizadmin/internal/services/auth"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	admin, access, refresh, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return utils.Unauthorized(c, "invalid email or password")
		case errors.Is(err, auth.ErrAccountDisabled):
			return utils.Unauthorized(c, "account is disabled")
		default:
			return utils.InternalError(c, "login failed")
		}
	}

	return utils.Success(c, fiber.Map{
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req validation.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	access, refresh, err := h.service.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return utils.Unauthorized(c, "invalid or expired refresh token")
	}

	return utils.Success(c, fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if err := h.service.Logout(c.Context(), claims.AdminID); err != nil {
		return utils.InternalError(c, "logout failed")
	}
	return utils.Message(c, "logged out")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	admin, err := h.service.GetAdminByID(c.Context(), claims.AdminID)
	if err != nil {
		return utils.NotFound(c, "admin not found")
	}
	return utils.Success(c, fiber.Map{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  admin.Role,
	})
}
