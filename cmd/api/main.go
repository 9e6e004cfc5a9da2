// @title Event discovery API
// @version 1.0
// @description Accounts, events tagged with cities and subjects, and saved search filters.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdiscovery/config"
	"eventdiscovery/internal/adapters/auth"
	"eventdiscovery/internal/adapters/email"
	httpdelivery "eventdiscovery/internal/delivery/http"
	"eventdiscovery/internal/delivery/http/controllers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/repository/postgres"
	"eventdiscovery/internal/services"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("migrate database", "err", err)
		os.Exit(1)
	}
	store := postgres.NewStore(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.AWSRegion,
			AccessKeyID:     cfg.Mail.AWSAccessKeyID,
			SecretAccessKey: cfg.Mail.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("parse email templates", "err", err)
		os.Exit(1)
	}

	authSvc := services.NewAuthService(
		store.Users(),
		auth.NewPBKDF2Hasher(cfg.PasswordPepper, auth.DefaultIterations),
		auth.NewJWTCodec(cfg.ServerSecret),
		services.TokenLifetimes{Access: cfg.AccessTokenLifetime, Refresh: cfg.RefreshTokenLifetime},
		services.NewEmailService(mailer, renderer, logger),
		logger,
	)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:   controllers.NewAuthController(logger, authSvc),
		Event:  controllers.NewEventController(logger, services.NewEventService(store)),
		Filter: controllers.NewFilterController(logger, services.NewFilterService(store)),
		Health: controllers.NewHealthController(logger, db),
	}, authSvc, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
