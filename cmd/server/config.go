package main

import (
	"fmt"
	"log/slog"

	"github.com/omniora/omniora-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables or a config file. Returns the loaded config and any loading
// error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.LLM.GeminiAPIKey != "" {
		slog.Debug("LLM configuration",
			"api_key_present", true,
			"model_name", cfg.LLM.ModelName)
	}

	return cfg, nil
}
