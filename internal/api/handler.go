package api

import (
	"time"

	"github.com/dataglance/tably/internal/db"
	"github.com/dataglance/tably/internal/mail"
	"github.com/dataglance/tably/internal/services"
)

type Config struct {
	SecretKey    []byte
	CookieSecure bool
	Mailer       mail.Mailer
	Insights     services.InsightConfig
}

type Handler struct {
	auth            *services.AuthService
	uploads         *services.UploadService
	insights        *services.InsightService
	admin           *services.AdminService
	secretKey       []byte
	cookieSecure    bool
	recoveryLimiter *attemptLimiter
	now             func() time.Time
}

func NewHandler(repos *db.Repositories, config Config) *Handler {
	return &Handler{
		auth:            services.NewAuthService(repos.Users, config.Mailer),
		uploads:         services.NewUploadService(repos.Uploads),
		insights:        services.NewInsightService(config.Insights),
		admin:           services.NewAdminService(repos.Users, repos.Uploads),
		secretKey:       config.SecretKey,
		cookieSecure:    config.CookieSecure,
		recoveryLimiter: newAttemptLimiter(),
		now:             time.Now,
	}
}
