package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.admin.ListUsers()
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch users")
	}
	return c.JSON(users)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := handler.admin.DeleteUser(uint(userID)); err != nil {
		return respondServiceError(c, err, "Failed to delete user")
	}
	return apiMessage(c, fiber.StatusOK, "User deleted successfully")
}

func (handler *Handler) UsageStats(c *fiber.Ctx) error {
	stats, err := handler.admin.UsageStats()
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch usage statistics")
	}
	return c.JSON(stats)
}
