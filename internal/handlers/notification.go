package handlers

import (
	"errors"

	"quizadmin/internal/services/notification"
	"quizadmin/internal/utils"
	"quizadmin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Send fans a push notification out to all users, or only to the listed
// ones. Per-token failures come back in the result; a broken credential or
// token exchange fails the whole call with 500.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req validation.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if errs := validation.Struct(&req); errs != nil {
		return utils.ValidationError(c, errs)
	}

	result, err := h.service.Dispatch(c.Context(), req.UserIDs, notification.Message{
		Title: req.Title,
		Body:  req.Body,
		Image: req.Image,
		Data:  req.Data,
	})
	if err != nil {
		if errors.Is(err, notification.ErrConfiguration) {
			return utils.InternalError(c, "push notifications are not configured")
		}
		return utils.InternalError(c, "could not send notification")
	}
	return utils.Success(c, result)
}
