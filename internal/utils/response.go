package utils

import "github.com/gofiber/fiber/v2"

// Success sends a 200 response with the standard success envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Created sends a 201 response with the standard success envelope.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// Message sends a 200 response carrying only a human-readable message.
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

// Error sends an error response with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// BadRequest sends a 400 business-rule error.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 error.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 error.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalError sends a 500 error.
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationError sends a 422 response with a field -> messages map.
// No mutation has happened when this is returned.
func ValidationError(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "validation failed",
		"errors":  errs,
	})
}

// Paginated sends a 200 response with data plus the pagination envelope.
func Paginated(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": p.Envelope(),
	})
}
