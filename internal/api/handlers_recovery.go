package api

import (
	"github.com/gofiber/fiber/v2"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (handler *Handler) throttleRecovery(c *fiber.Ctx) (bool, error) {
	key := recoveryLimiterKey(c)
	if !handler.recoveryLimiter.allow(key, handler.now(), recoveryAttemptLimit, recoveryAttemptWindow) {
		return false, apiError(c, fiber.StatusTooManyRequests, "Too many attempts, try again later")
	}
	return true, nil
}

// ForgotPassword starts the recovery cycle. The code reaches the account owner
// only by email; the response is a bare acknowledgement.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	if ok, err := handler.throttleRecovery(c); !ok {
		return err
	}

	var request forgotPasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	if err := handler.auth.RequestPasswordReset(request.Email); err != nil {
		return respondServiceError(c, err, "Failed to send OTP")
	}
	return apiMessage(c, fiber.StatusOK, "OTP sent to email")
}

// VerifyOTP is a read-only check; the challenge stays valid for the reset call.
func (handler *Handler) VerifyOTP(c *fiber.Ctx) error {
	if ok, err := handler.throttleRecovery(c); !ok {
		return err
	}

	var request verifyOTPRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	if err := handler.auth.VerifyResetCode(request.Email, request.OTP); err != nil {
		return respondServiceError(c, err, "OTP verification failed")
	}
	return apiMessage(c, fiber.StatusOK, "OTP verified. You can reset your password now.")
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	var request resetPasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "All fields are required.")
	}

	if err := handler.auth.ResetPassword(request.Email, request.OTP, request.NewPassword); err != nil {
		return respondServiceError(c, err, "Password reset failed")
	}

	handler.recoveryLimiter.reset(recoveryLimiterKey(c))
	return apiMessage(c, fiber.StatusOK, "Password reset successfully")
}
