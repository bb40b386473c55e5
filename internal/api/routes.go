package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/profile", handler.AuthRequired, handler.Profile)
	auth.Put("/profile", handler.AuthRequired, handler.UpdateProfile)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/verify-otp", handler.VerifyOTP)
	auth.Post("/reset-password", handler.ResetPassword)

	upload := api.Group("/upload", handler.AuthRequired)
	upload.Post("", handler.Upload)
	upload.Get("/history", handler.UploadHistory)
	upload.Delete("/:id", handler.DeleteUpload)

	ai := api.Group("/ai", handler.AuthRequired)
	ai.Post("/insights", handler.GenerateInsights)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/users", handler.ListUsers)
	admin.Delete("/users/:id", handler.DeleteUser)
	admin.Get("/usage-stats", handler.UsageStats)
}
