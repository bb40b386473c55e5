package api

import (
	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) Signup(c *fiber.Ctx) error {
	var request signupRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	user, err := handler.auth.Register(request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		return respondServiceError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Email and password are required.")
	}

	user, err := handler.auth.Login(request.Email, request.Password)
	if err != nil {
		return respondServiceError(c, err, "Login failed")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return respondServiceError(c, err, "Token generation failed")
	}
	return c.JSON(user.Public())
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	claims := sessionFromContext(c)

	user, err := handler.auth.FindByID(claims.UserID)
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch profile")
	}
	return c.JSON(user.Public())
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	claims := sessionFromContext(c)

	var request updateProfileRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	user, err := handler.auth.UpdateProfile(claims.UserID, request.Name)
	if err != nil {
		return respondServiceError(c, err, "Failed to update profile")
	}
	return c.JSON(user.Public())
}
