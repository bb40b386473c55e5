package api

import (
	"errors"
	"strconv"

	"github.com/dataglance/tably/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Upload accepts a multipart spreadsheet, parses it into row objects and
// persists them alongside the upload metadata.
func (handler *Handler) Upload(c *fiber.Ctx) error {
	claims := sessionFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if !services.AllowedSpreadsheet(fileHeader.Filename) {
		return apiError(c, fiber.StatusBadRequest, "Only Excel files are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	defer file.Close()

	rows, err := services.ParseWorkbook(file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyWorkbook) {
			return apiError(c, fiber.StatusBadRequest, "Spreadsheet has no data rows")
		}
		return apiError(c, fiber.StatusBadRequest, "Failed to parse Excel file")
	}

	upload, err := handler.uploads.Store(claims.UserID, fileHeader.Filename, rows)
	if err != nil {
		return respondServiceError(c, err, "Failed to save Excel file")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded and parsed successfully",
		"upload":  upload,
	})
}

func (handler *Handler) UploadHistory(c *fiber.Ctx) error {
	claims := sessionFromContext(c)

	uploads, err := handler.uploads.History(claims.UserID)
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch upload history")
	}
	return c.JSON(uploads)
}

func (handler *Handler) DeleteUpload(c *fiber.Ctx) error {
	claims := sessionFromContext(c)

	uploadID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "Upload not found or unauthorized")
	}

	if err := handler.uploads.Delete(claims.UserID, uint(uploadID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return apiError(c, fiber.StatusNotFound, "Upload not found or unauthorized")
		}
		return respondServiceError(c, err, "Failed to delete upload")
	}
	return apiMessage(c, fiber.StatusOK, "Upload deleted successfully")
}
