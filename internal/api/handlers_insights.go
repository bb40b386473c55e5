package api

import (
	"errors"
	"log"

	"github.com/dataglance/tably/internal/services"
	"github.com/gofiber/fiber/v2"
)

type insightsRequest struct {
	Data []map[string]any `json:"data"`
}

func (handler *Handler) GenerateInsights(c *fiber.Ctx) error {
	var request insightsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid or empty data for insights")
	}
	if len(request.Data) == 0 {
		return apiError(c, fiber.StatusBadRequest, "Invalid or empty data for insights")
	}

	insights, err := handler.insights.Generate(c.Context(), request.Data)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return apiError(c, fiber.StatusBadRequest, "Invalid or empty data for insights")
		}
		log.Printf("insight generation failed: %v", err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate insights")
	}

	return c.JSON(fiber.Map{"insights": insights})
}
