package api

import (
	"github.com/dataglance/tably/internal/models"
	"github.com/gofiber/fiber/v2"
)

const contextClaimsKey = "session_claims"

// AuthRequired authenticates the request from the Authorization header or the
// session cookie and stashes the verified claims for downstream handlers.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := requestSessionToken(c)
	if rawToken == "" {
		return apiError(c, fiber.StatusUnauthorized, "Access denied, no token provided")
	}

	claims, err := handler.parseSessionToken(rawToken)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	c.Locals(contextClaimsKey, claims)
	return c.Next()
}

// AdminOnly must run after AuthRequired.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	claims := sessionFromContext(c)
	if claims == nil {
		return apiError(c, fiber.StatusUnauthorized, "Access denied, no token provided")
	}
	if claims.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusForbidden, "Admin access required")
	}
	return c.Next()
}

func sessionFromContext(c *fiber.Ctx) *sessionClaims {
	claims, _ := c.Locals(contextClaimsKey).(*sessionClaims)
	return claims
}
