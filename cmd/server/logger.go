package main

import (
	"log/slog"

	"github.com/omniora/omniora-api/internal/config"
	"github.com/omniora/omniora-api/internal/platform/logger"
)

// setupAppLogger configures the application logger based on config
// settings and installs it as the process default.
func setupAppLogger(cfg *config.Config) *slog.Logger {
	return logger.Setup(cfg.Server.LogLevel)
}
