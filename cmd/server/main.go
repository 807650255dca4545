// Package main implements the entry point for the OMNIORA API server,
// which tracks user progression (XP, levels, mastery, streaks) for a
// gamified micro-learning app and provides LLM integration for concept
// generation and daily engagement notifications.
package main

import (
	"context"
	"log"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run wires the application together and blocks until shutdown. It is
// separated from main so initialization errors flow back as values.
func run() error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger := setupAppLogger(cfg)

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return err
	}

	if err := applyMigrations(db, logger); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return err
	}

	return app.Run(ctx)
}
