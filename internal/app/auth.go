package app

import (
	"context"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
)

// ExecuteAuthSetCommand stores the given API key in the configuration file.
func ExecuteAuthSetCommand(ctx context.Context, cfg *config.Config, apiKey string) {
	cfg.APIKey = apiKey

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "You can now trace requests against your Azure OpenAI resource:")
	logger.Info(ctx, `sk-trace "What is the capital of France?"`)
}
