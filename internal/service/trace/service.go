package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/alexmanie/sk-tracing-utils/internal/client/azopenai"
	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	http_transport "github.com/alexmanie/sk-tracing-utils/internal/transport/http"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// Service runs traced requests against Azure OpenAI and turns captured
// exchanges into reports.
type Service interface {
	// Chat sends a single user prompt through the instrumented client
	// and returns the assistant's reply.
	Chat(ctx context.Context, prompt string) (string, error)
	// EmbedLines embeds each line through the instrumented client,
	// one request per line, and returns a summary.
	EmbedLines(ctx context.Context, lines []string) (*EmbedSummary, error)
	// ListModels retrieves the models available on the resource via the plain client.
	ListModels(ctx context.Context) ([]*azopenai.Model, error)
	// Snapshot returns the most recent captured exchange.
	Snapshot(ctx context.Context) *Exchange
	// Render renders the most recent captured exchange in the given format.
	Render(ctx context.Context, format string) (string, error)
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// plain is the uninstrumented client.
	plain azopenai.Client
	// traced is the instrumented client.
	traced azopenai.Client
	// logging exposes the exchange captured from traced.
	logging *http_transport.LoggingClient
}

// EmbedSummary summarizes an EmbedLines run.
type EmbedSummary struct {
	// LinesEmbedded is the number of successfully embedded lines.
	LinesEmbedded int
	// TotalTokens is the total number of tokens consumed, when reported.
	TotalTokens int
}

// Static error definitions for better error handling.
var (
	// ErrUnknownReportFormat indicates that the requested report format is not supported.
	ErrUnknownReportFormat = errors.New("unknown report format")
	// ErrNoChoices indicates that a chat completion returned no choices.
	ErrNoChoices = errors.New("chat completion returned no choices")
)

// NewService creates and returns a new instance of ServiceImpl over a client pair.
func NewService(cfg *config.Config, pair *ClientPair) Service {
	return &ServiceImpl{
		cfg:     cfg,
		plain:   pair.Plain,
		traced:  pair.Traced,
		logging: pair.Logging,
	}
}

// Chat sends a single user prompt through the instrumented client
// and returns the assistant's reply.
func (s *ServiceImpl) Chat(ctx context.Context, prompt string) (string, error) {
	response, err := s.traced.CreateChatCompletion(ctx, &azopenai.ChatCompletionRequest{
		Messages: []azopenai.ChatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}

	if response.Usage != nil {
		logger.Debugf(ctx, "Chat completion consumed %d tokens", response.Usage.TotalTokens)
	}

	return response.Choices[0].Message.Content, nil
}

// EmbedLines embeds each line through the instrumented client, one request
// per line so the capture always holds the last embedding exchange.
// Progress is reported on stderr.
func (s *ServiceImpl) EmbedLines(ctx context.Context, lines []string) (*EmbedSummary, error) {
	summary := &EmbedSummary{}

	bar := progressbar.NewOptions(len(lines),
		progressbar.OptionSetDescription("Embedding lines"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, line := range lines {
		response, err := s.traced.CreateEmbeddings(ctx, &azopenai.EmbeddingsRequest{
			Input: []string{line},
		})
		if err != nil {
			return summary, err
		}

		summary.LinesEmbedded++
		if response.Usage != nil {
			summary.TotalTokens += response.Usage.TotalTokens
		}

		_ = bar.Add(1)
	}

	return summary, nil
}

// ListModels retrieves the models available on the resource via the plain client.
func (s *ServiceImpl) ListModels(ctx context.Context) ([]*azopenai.Model, error) {
	return s.plain.ListModels(ctx)
}

// Snapshot returns the most recent captured exchange.
func (s *ServiceImpl) Snapshot(_ context.Context) *Exchange {
	return &Exchange{
		RequestHeaders:  s.logging.RequestHeaders(),
		RequestContent:  string(s.logging.RequestContent()),
		ResponseHeaders: s.logging.ResponseHeaders(),
		ResponseContent: string(s.logging.ResponseContent()),
	}
}

// Render renders the most recent captured exchange in the given format:
// config.ReportFormatText, config.ReportFormatJSON, or config.ReportFormatYAML.
func (s *ServiceImpl) Render(ctx context.Context, format string) (string, error) {
	exchange := s.Snapshot(ctx)

	switch format {
	case config.ReportFormatText:
		return renderText(exchange), nil
	case config.ReportFormatJSON:
		encoded, err := json.MarshalIndent(exchange, "", "  ")
		if err != nil {
			return "", err
		}

		return string(encoded), nil
	case config.ReportFormatYAML:
		encoded, err := yaml.Marshal(exchange)
		if err != nil {
			return "", err
		}

		return string(encoded), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownReportFormat, format)
	}
}

// renderText renders the exchange as a sectioned plain-text report.
func renderText(exchange *Exchange) string {
	if exchange.IsEmpty() {
		return "No exchange captured yet.\n"
	}

	var b strings.Builder

	writeHeaderSection(&b, "Request headers", exchange.RequestHeaders)
	writeBodySection(&b, "Request content", exchange.RequestContent, exchange.RequestHeaders)
	writeHeaderSection(&b, "Response headers", exchange.ResponseHeaders)
	writeBodySection(&b, "Response content", exchange.ResponseContent, exchange.ResponseHeaders)

	return b.String()
}

// writeHeaderSection writes headers sorted by name for stable output.
func writeHeaderSection(b *strings.Builder, title string, headers map[string]string) {
	fmt.Fprintf(b, "=== %s ===\n", title)

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(b, "%s: %s\n", name, headers[name])
	}

	b.WriteString("\n")
}

// writeBodySection writes the body inline for text-like content types,
// pretty-printing JSON, and summarizes everything else by size.
func writeBodySection(b *strings.Builder, title, content string, headers map[string]string) {
	fmt.Fprintf(b, "=== %s ===\n", title)

	if content == "" {
		b.WriteString("(empty)\n\n")

		return
	}

	contentType := headers["Content-Type"]
	if !utils.IsTextContentType(contentType) {
		if contentType == "" {
			contentType = "unknown content type"
		}

		fmt.Fprintf(b, "(%s, %s)\n\n", contentType, humanize.Bytes(uint64(len(content))))

		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(content), "", "  "); err == nil {
		b.WriteString(pretty.String())
	} else {
		b.WriteString(content)
	}

	b.WriteString("\n\n")
}
