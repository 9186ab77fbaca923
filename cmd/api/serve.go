package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-assistant/internal/config"
	"github.com/justsurfingit/job-search-assistant/internal/database"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/handlers"
	"github.com/justsurfingit/job-search-assistant/internal/server"
	"github.com/justsurfingit/job-search-assistant/internal/services"
	"github.com/justsurfingit/job-search-assistant/internal/storage"
	"github.com/justsurfingit/job-search-assistant/internal/webhook"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, cfg, log); err != nil {
			log.Error("server stopped", zap.Error(err))
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	store, err := objectStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("closing event publisher", zap.Error(err))
		}
	}()

	relay := webhook.New(webhook.Config{
		OnboardingURL:  cfg.WebhookURL(cfg.N8NOnboardingPath),
		ParseResumeURL: cfg.WebhookURL(cfg.N8NParseResumePath),
		Timeout:        cfg.WebhookTimeout,
		Retries:        cfg.WebhookRetries,
	}, log)

	users := services.NewUserService(db, publisher, log)
	uploads := services.NewUploadService(db, store, log)
	onboarding := services.NewOnboardingService(users, uploads, relay, publisher, log)
	learnings := services.NewLearningService(db, publisher, log)
	resumes := services.NewResumeService(db)

	if !cfg.LogDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Deps{
		Users:          handlers.NewUserHandler(onboarding, users, uploads, log),
		Learnings:      handlers.NewLearningHandler(learnings, log),
		Resumes:        handlers.NewResumeHandler(resumes, log),
		Logger:         log,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	return server.Run(ctx, cfg.Addr(), router, log)
}

func objectStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.ObjectStore, error) {
	if !cfg.R2.Enabled() {
		log.Info("object storage not configured, uploads will not be archived")
		return storage.Noop{}, nil
	}

	store, err := storage.NewR2(ctx, storage.R2Config{
		AccountID: cfg.R2.AccountID,
		Bucket:    cfg.R2.Bucket,
		AccessKey: cfg.R2.AccessKey,
		SecretKey: cfg.R2.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store: %w", err)
	}
	log.Info("object storage ready", zap.String("bucket", cfg.R2.Bucket))
	return store, nil
}

func newPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		log.Info("event publishing disabled")
		return events.Noop{}, nil
	}

	p, err := events.Dial(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}
	log.Info("publishing events", zap.String("exchange", cfg.EventsExchange))
	return p, nil
}
