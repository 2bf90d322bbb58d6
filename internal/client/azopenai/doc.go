// Package azopenai provides a Go client for the Azure OpenAI REST API.
// It handles HTTP communication with key-based authentication,
// api-version negotiation, and throttling-aware retries.
// Key features include chat completions, embeddings, and model
// metadata retrieval with caching for repeated lookups.
// The client accepts a custom HTTP client so callers can layer
// tracing or capture transports underneath it.
package azopenai
