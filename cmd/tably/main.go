package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dataglance/tably/internal/api"
	"github.com/dataglance/tably/internal/db"
	"github.com/dataglance/tably/internal/mail"
	"github.com/dataglance/tably/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "tably.db"))
	port := getEnv("PORT", "5000")
	corsOrigin := getEnv("CORS_ORIGIN", "http://localhost:5173")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repos := db.NewRepositories(database)

	handler := api.NewHandler(repos, api.Config{
		SecretKey:    []byte(secretKey),
		CookieSecure: cookieSecure,
		Mailer:       buildMailer(),
		Insights: services.InsightConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   os.Getenv("OPENAI_MODEL"),
		},
	})

	app := fiber.New(fiber.Config{
		AppName:               "Tably",
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigin,
		AllowCredentials: true,
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Tably listening on http://0.0.0.0:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func buildMailer() mail.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Print("SMTP_HOST not set, password reset emails will be logged instead of sent")
		return mail.LogMailer{}
	}
	return mail.NewSMTPMailer(
		host,
		getEnv("SMTP_PORT", "465"),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
