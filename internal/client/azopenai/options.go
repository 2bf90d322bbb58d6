package azopenai

import "net/http"

// Option customizes client construction.
type Option func(*ClientImpl)

// WithHTTPClient makes the client send requests through the provided HTTP client
// instead of the default one. The client keeps the provided transport chain
// intact and layers the api-key injector on top of it, so capture or tracing
// transports underneath observe fully authenticated requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *ClientImpl) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}
