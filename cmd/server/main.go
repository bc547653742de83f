// Package main implements the entry point for the TaskDeck API server,
// a personal task management service with JWT authentication.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/mhoudret/taskdeck-api/internal/config"
	"github.com/mhoudret/taskdeck-api/internal/platform/logger"
)

// main initializes configuration, logging, the database connection, and
// the dependency graph, then runs the HTTP server until shutdown.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name)

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		return nil, err
	}

	return app, nil
}
