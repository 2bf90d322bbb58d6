package app

import (
	"context"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// ExecuteEmbedCommand embeds every unique line of the given file through the
// instrumented client and prints the report of the last captured exchange.
func ExecuteEmbedCommand(ctx context.Context, cfg *config.Config, path string) {
	lines, err := utils.ReadUniqueLinesFromFile(path)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read input file: %v", err)
	}

	if len(lines) == 0 {
		logger.Warnf(ctx, "File '%s' contains no lines to embed", path)
		return
	}

	s := newTraceService(ctx, cfg)

	defer printExchangeReport(ctx, cfg, s)

	summary, err := s.EmbedLines(ctx, lines)
	if err != nil {
		logger.Errorf(ctx, "Embedding failed after %d lines: %v", summary.LinesEmbedded, err)
		return
	}

	logger.Infof(ctx, "Embedded %d lines, %d tokens total", summary.LinesEmbedded, summary.TotalTokens)
}
