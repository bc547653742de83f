package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mhoudret/taskdeck-api/internal/config"
	"github.com/mhoudret/taskdeck-api/internal/platform/mongodb"
	"github.com/mhoudret/taskdeck-api/internal/service/auth"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// application holds the initialized dependencies shared across the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client

	userStore  store.UserStore
	taskStore  store.TaskStore
	statsStore store.TaskStatsStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
}

// newApplication wires the stores and services against the connected
// database. The caller must invoke cleanup on shutdown.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		mongoClient:    client,
		userStore:      mongodb.NewUserStore(db, logger),
		taskStore:      mongodb.NewTaskStore(db, logger),
		statsStore:     mongodb.NewTaskStatsStore(db, logger),
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.mongoClient != nil {
		if err := app.mongoClient.Disconnect(context.Background()); err != nil {
			app.logger.Error("failed to disconnect from database", "error", err)
		}
	}
}
