package app

import (
	"context"
	"fmt"
	"os"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/service/trace"
)

// ExecuteRootCommand is the entry point for the application.
// It sends the prompt through the instrumented client, prints the assistant's
// reply, and then prints the captured exchange report.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, prompt string) {
	s := newTraceService(ctx, cfg)

	// Ensure the captured exchange is ALWAYS reported, even on panic.
	defer printExchangeReport(ctx, cfg, s)

	reply, err := s.Chat(ctx, prompt)
	if err != nil {
		logger.Errorf(ctx, "Chat completion failed: %v", err)
		return
	}

	fmt.Fprintln(os.Stdout, reply)
}

// newTraceService builds a trace service over a fresh client pair.
func newTraceService(ctx context.Context, cfg *config.Config) trace.Service {
	pair, err := trace.NewClientPair(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Azure OpenAI clients: %v", err)
	}

	return trace.NewService(cfg, pair)
}

// printExchangeReport recovers from panics and prints the last captured
// exchange in the configured format, either to stdout or to the report file.
func printExchangeReport(ctx context.Context, cfg *config.Config, s trace.Service) {
	if r := recover(); r != nil {
		logger.Errorf(ctx, "Panic recovered: %v", r)
	}

	report, err := s.Render(ctx, cfg.ReportFormat)
	if err != nil {
		logger.Errorf(ctx, "Failed to render exchange report: %v", err)
		return
	}

	if cfg.ReportPath == "" {
		fmt.Fprintln(os.Stdout, report)
		return
	}

	path, err := trace.SaveReport(cfg.ReportPath, cfg.ReportFormat, report)
	if err != nil {
		logger.Errorf(ctx, "Failed to save exchange report: %v", err)
		return
	}

	logger.Infof(ctx, "Exchange report saved to '%s'", path)
}
