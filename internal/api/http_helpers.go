package api

import (
	"errors"
	"log"

	"github.com/dataglance/tably/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func apiMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// respondServiceError maps the service failure classes onto HTTP statuses.
// Anything unrecognized is logged and reported as a generic internal failure.
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	case errors.Is(err, services.ErrDuplicateEmail):
		return apiError(c, fiber.StatusBadRequest, "Email already in use.")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "Invalid password")
	case errors.Is(err, services.ErrInvalidOrExpiredCode):
		return apiError(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, services.ErrDelivery):
		log.Printf("email delivery failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to send OTP")
	default:
		log.Printf("%s: %v", fallback, err)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
