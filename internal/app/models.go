package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alexmanie/sk-tracing-utils/internal/client/azopenai"
	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// ExecuteModelsCommand lists the models available on the Azure OpenAI resource.
// The listing goes through the plain client, so it never touches the capture.
func ExecuteModelsCommand(ctx context.Context, cfg *config.Config) {
	s := newTraceService(ctx, cfg)

	models, err := s.ListModels(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to list models: %v", err)
	}

	if len(models) == 0 {
		logger.Info(ctx, "No models are available on this resource")
		return
	}

	lines := utils.Map(models, func(model *azopenai.Model) string {
		status := model.LifecycleStatus
		if status == "" {
			status = "unknown"
		}

		return fmt.Sprintf("%s (%s)", model.ID, status)
	})

	fmt.Fprintln(os.Stdout, strings.Join(lines, "\n"))
}
