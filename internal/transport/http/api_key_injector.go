package http

import (
	"net/http"

	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// APIKeyInjector is a custom http.RoundTripper that injects an api-key header into HTTP requests.
// It wraps another http.RoundTripper and ensures that the header Azure OpenAI
// expects for key-based authentication is present in every request.
type APIKeyInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// credentialProvider provides the API key to inject.
	credentialProvider utils.CredentialProvider
}

// apiKeyHeader is the HTTP header name Azure OpenAI reads the key from.
const apiKeyHeader = "api-key"

// NewAPIKeyInjector creates and returns a new instance of APIKeyInjector.
// It takes an underlying http.RoundTripper and a CredentialProvider to supply the API key.
func NewAPIKeyInjector(next http.RoundTripper, credentialProvider utils.CredentialProvider) http.RoundTripper {
	return &APIKeyInjector{
		next:               next,
		credentialProvider: credentialProvider,
	}
}

// RoundTrip executes a single HTTP transaction and injects an api-key header if it is missing.
// It implements the http.RoundTripper interface.
func (t *APIKeyInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(apiKeyHeader) == "" {
		req.Header.Set(apiKeyHeader, t.credentialProvider.GetAPIKey())
	}

	return t.next.RoundTrip(req)
}
