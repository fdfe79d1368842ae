package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/phrazzld/lumina-api/internal/generation"
	"github.com/phrazzld/lumina-api/internal/platform/gemini"
	"github.com/phrazzld/lumina-api/internal/platform/postgres"
	"github.com/phrazzld/lumina-api/internal/service"
	"github.com/phrazzld/lumina-api/internal/service/auth"
	"github.com/phrazzld/lumina-api/internal/store"
	"github.com/phrazzld/lumina-api/internal/tutor"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	contactStore   store.ContactStore
	messageStore   store.MessageStore
	studyPlanStore store.StudyPlanStore

	jwtService       auth.JWTService
	assistant        *tutor.Service
	messagingService service.MessagingService
	studyPlanService service.StudyPlanService
}

// newApplication creates a new application instance with all dependencies
// initialized. The model client is created only when a credential is
// configured; without one the tutor runs offline.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.contactStore = postgres.NewPostgresContactStore(db, logger)
	app.messageStore = postgres.NewPostgresMessageStore(db, logger)
	app.studyPlanStore = postgres.NewPostgresStudyPlanStore(db, logger)

	var client generation.Client
	if cfg.LLM.Online() {
		gc, err := gemini.NewClient(ctx, logger.With("component", "gemini_client"), cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize model client: %w", err)
		}
		client = gc
		logger.Info("Model client initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Warn("No Gemini API key configured; assistant is offline")
	}

	app.assistant = tutor.New(client, logger, tutor.Options{
		PersonaWindow: cfg.Conversation.PersonaWindow,
		TutorWindow:   cfg.Conversation.TutorWindow,
	})

	app.messagingService, err = service.NewMessagingService(
		app.contactStore,
		app.messageStore,
		app.assistant,
		db,
		cfg.Conversation.PersonaWindow,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging service: %w", err)
	}

	app.studyPlanService, err = service.NewStudyPlanService(app.studyPlanStore, app.assistant, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study plan service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
