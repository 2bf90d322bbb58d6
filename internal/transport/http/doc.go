// Package http provides custom HTTP transport utilities for tracing
// traffic against Azure OpenAI endpoints: a capture transport that records
// the most recent request/response exchange, a client wrapper exposing the
// captured data, and an API key header injector.
// It is designed to enhance HTTP client functionality
// with debugging capabilities and request customization.
package http
