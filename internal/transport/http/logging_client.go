package http

import (
	"net/http"
	"time"
)

// LoggingClient is an *http.Client bound to a CaptureTransport.
// It behaves exactly like the client it wraps and additionally exposes the
// headers and bodies of the most recent request/response exchange.
type LoggingClient struct {
	// client is the underlying HTTP client sending requests through the capture transport.
	client *http.Client
	// transport is the capture transport recording exchanges.
	transport *CaptureTransport
}

// NewLoggingClient creates and returns a new instance of LoggingClient.
// The capture transport is layered over next (http.DefaultTransport when nil).
// If timeout is not positive, DefaultTimeout is used.
func NewLoggingClient(next http.RoundTripper, timeout time.Duration, maxLogLength int64) *LoggingClient {
	transport := NewCaptureTransport(next, maxLogLength)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &LoggingClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		transport: transport,
	}
}

// HTTPClient returns the underlying *http.Client for use by higher-level clients.
func (c *LoggingClient) HTTPClient() *http.Client {
	return c.client
}

// Do sends an HTTP request through the capture transport and returns the response.
func (c *LoggingClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// RequestHeaders returns the headers of the most recent captured request.
func (c *LoggingClient) RequestHeaders() map[string]string {
	return c.transport.RequestHeaders()
}

// RequestContent returns the body of the most recent captured request.
func (c *LoggingClient) RequestContent() []byte {
	return c.transport.RequestContent()
}

// ResponseHeaders returns the headers of the most recent captured response.
func (c *LoggingClient) ResponseHeaders() map[string]string {
	return c.transport.ResponseHeaders()
}

// ResponseContent returns the body of the most recent captured response.
func (c *LoggingClient) ResponseContent() []byte {
	return c.transport.ResponseContent()
}
