package trace

import (
	"net/http"

	"github.com/alexmanie/sk-tracing-utils/internal/client/azopenai"
	"github.com/alexmanie/sk-tracing-utils/internal/config"
	http_transport "github.com/alexmanie/sk-tracing-utils/internal/transport/http"
)

// ClientPair holds two Azure OpenAI clients built from the same configuration:
// a plain one and one instrumented with a capture transport, plus the logging
// client handle the captured exchange can be read from.
type ClientPair struct {
	// Plain is the uninstrumented client.
	Plain azopenai.Client
	// Traced is the client whose traffic flows through the capture transport.
	Traced azopenai.Client
	// Logging exposes the most recent exchange captured from Traced.
	Logging *http_transport.LoggingClient
}

// NewClientPair creates both clients from the shared configuration.
// Construction errors from the underlying client are propagated unmodified.
func NewClientPair(cfg *config.Config) (*ClientPair, error) {
	plain, err := azopenai.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	loggingClient := http_transport.NewLoggingClient(
		http.DefaultTransport,
		cfg.ParsedRequestTimeout,
		cfg.ParsedMaxCaptureLogLength,
	)

	traced, err := azopenai.NewClient(cfg, azopenai.WithHTTPClient(loggingClient.HTTPClient()))
	if err != nil {
		return nil, err
	}

	return &ClientPair{
		Plain:   plain,
		Traced:  traced,
		Logging: loggingClient,
	}, nil
}
