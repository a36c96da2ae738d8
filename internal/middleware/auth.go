package middleware

import (
	"strings"

	"quizadmin/internal/models"
	"quizadmin/internal/services/auth"
	"quizadmin/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AdminAuth validates the Bearer token and rejects tokens minted before the
// admin's last logout (token-version mismatch).
func AdminAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return utils.Unauthorized(c, "missing or malformed authorization header")
		}

		claims, err := utils.ParseAdminToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return utils.Unauthorized(c, "invalid or expired token")
		}

		version, err := authService.GetTokenVersion(c.Context(), claims.AdminID)
		if err != nil || claims.TokenVersion != version {
			return utils.Unauthorized(c, "token has been revoked")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the authenticated admin's claims, or nil outside an
// AdminAuth-protected route.
func ClaimsFrom(c *fiber.Ctx) *models.AdminClaims {
	claims, _ := c.Locals(claimsKey).(*models.AdminClaims)
	return claims
}
