package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcrm/config"
	"eventcrm/docs"
	"eventcrm/internal/adapters/auth"
	"eventcrm/internal/adapters/email"
	delivery "eventcrm/internal/delivery/http"
	"eventcrm/internal/delivery/http/controllers"
	"eventcrm/internal/delivery/http/middleware"
	"eventcrm/internal/domain"
	"eventcrm/internal/repository"
	"eventcrm/internal/repository/docstore"
	"eventcrm/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Event CRM API
// @version 1.0
// @description Users, events, registrations, filtered email campaigns and engagement analytics.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	if err := backend.Provision(ctx); err != nil {
		logger.Error("failed to provision store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := docstore.NewUserRepository(backend.Store)
	eventRepo := docstore.NewEventRepository(backend.Store)
	logRepo := docstore.NewNotificationLogRepository(backend.Store)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPassword,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "provider", cfg.Email.Provider, "error", err)
		os.Exit(1)
	}

	var verifier domain.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewJWT(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET is not set, notification routes are unauthenticated")
	}

	// Services
	timeout := cfg.RequestTimeout
	userService := services.NewUserService(userRepo, timeout)
	eventService := services.NewEventService(eventRepo, timeout)
	queryService := services.NewQueryService(userRepo, timeout)
	relationshipService := services.NewRelationshipService(userRepo, eventRepo, logger, timeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	notificationService := services.NewNotificationService(queryService, emailService, logRepo, logger, timeout)
	analyticsService := services.NewAnalyticsService(userRepo, timeout)

	router := delivery.NewRouter(delivery.Controllers{
		Users:         controllers.NewUserController(logger, userService, queryService),
		Events:        controllers.NewEventController(logger, eventService, relationshipService),
		Notifications: controllers.NewNotificationController(logger, notificationService),
		Analytics:     controllers.NewAnalyticsController(logger, analyticsService),
	}, verifier, logger)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
