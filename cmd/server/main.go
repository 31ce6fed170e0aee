package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/auth"
	"devevent/internal/adapters/email"
	"devevent/internal/adapters/media"
	delivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

const requestTimeout = 10 * time.Second

// @title DevEvent API
// @version 1.0
// @description Event listing and booking API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	// The connector dials lazily; warm it up so a misconfigured DSN shows at
	// startup instead of on the first request. Failure here is not fatal, the
	// next Ensure call retries.
	conn := postgres.NewConnector(cfg.DBUrl)
	warmCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	if _, err := conn.Ensure(warmCtx); err != nil {
		logger.Warn("database not reachable yet", "err", err)
	}
	cancel()
	defer conn.Close()

	eventRepo := postgres.NewEventRepository(conn)
	bookingRepo := postgres.NewBookingRepository(conn)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	uploader := media.NewImageKitUploader(nil, media.ImageKitConfig{
		PrivateKey: cfg.ImageKitKey,
		Folder:     cfg.ImageKitFolder,
	})

	eventService := services.NewEventService(eventRepo, uploader, requestTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, requestTimeout)

	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)

	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService)
	authController := controllers.NewAuthController(logger, controllers.AdminCredentials{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		PasswordSalt: cfg.AdminPasswordSalt,
	}, hasher, issuer, cfg.TokenExpiry)

	mux := delivery.NewRouter(logger, verifier, eventController, bookingController, authController)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
