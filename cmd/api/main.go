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

	_ "github.com/lib/pq"

	"usermanagement/config"
	_ "usermanagement/docs"
	"usermanagement/internal/adapters/auth"
	"usermanagement/internal/adapters/email"
	"usermanagement/internal/adapters/qrcode"
	"usermanagement/internal/adapters/storage"
	delivery "usermanagement/internal/delivery/http"
	"usermanagement/internal/delivery/http/controllers"
	"usermanagement/internal/delivery/http/middleware"
	"usermanagement/internal/repository/postgres"
	"usermanagement/internal/services"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// @title User Management Invitations API
// @version 1.0
// @description Single-use invitations delivered by email with a QR code redemption link.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}
	if cfg.DBMigrate {
		if err := postgres.Migrate(startupCtx, db); err != nil {
			logger.Error("failed to apply schema", "err", err)
			os.Exit(1)
		}
		logger.Info("database schema applied")
	}

	store, err := storage.NewArtifactStore(storage.Config{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		PublicURL: cfg.Storage.PublicURL,
		Minio: storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			UseTLS:    cfg.Storage.MinioUseTLS,
		},
		S3: storage.S3Config{
			Region:          cfg.Storage.S3Region,
			Endpoint:        cfg.Storage.S3Endpoint,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create artifact store", "err", err)
		os.Exit(1)
	}
	if err := store.EnsureBucket(startupCtx); err != nil {
		logger.Error("failed to prepare artifact bucket", "err", err)
		os.Exit(1)
	}

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
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	invitationService := services.NewInvitationService(
		postgres.NewInvitationRepository(db),
		qrcode.NewPNGRenderer(cfg.QRCodeSize),
		store,
		emailService,
		logger,
		services.InvitationSettings{
			ServerBaseURL: cfg.ServerBaseURL,
			RedirectURL:   cfg.RedirectURL,
			Timeout:       cfg.RequestTimeout,
		},
	)

	router := delivery.NewRouter(
		controllers.NewInvitationController(logger, invitationService),
		controllers.NewSystemController(logger, db),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)
	var handler http.Handler = router
	handler = middleware.Metrics(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
