package azopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	http_transport "github.com/alexmanie/sk-tracing-utils/internal/transport/http"
)

// testConfig returns a configuration pointing at the given test server URL.
func testConfig(serverURL string) *config.Config {
	return &config.Config{
		Endpoint:             serverURL,
		APIKey:               "test-key",
		APIVersion:           "2024-06-01",
		Deployment:           "gpt-4o",
		EmbeddingDeployment:  "text-embedding-3-small",
		RetryAttemptsCount:   3,
		ParsedRequestTimeout: 10 * time.Second,
		ParsedMinRetryPause:  time.Millisecond,
		ParsedMaxRetryPause:  2 * time.Millisecond,
	}
}

// TestNewClient tests the NewClient function.
func TestNewClient(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("https://example.openai.azure.com"))
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Equal(t, "https://example.openai.azure.com", client.GetBaseURL())
}

// TestNewClient_InvalidEndpoint tests NewClient with an unparsable endpoint.
func TestNewClient_InvalidEndpoint(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("://missing-scheme"))
	require.Error(t, err)
	assert.Nil(t, client)
}

// TestCreateChatCompletion tests the CreateChatCompletion method.
func TestCreateChatCompletion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Messages, 1)
		assert.Equal(t, "user", request.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o",
			Choices: []ChatChoice{
				{
					Index:        0,
					Message:      ChatMessage{Role: "assistant", Content: "Hello!"},
					FinishReason: "stop",
				},
			},
			Usage: &Usage{PromptTokens: 5, CompletionTokens: 2, TotalTokens: 7},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	response, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.Equal(t, "chatcmpl-1", response.ID)
	require.Len(t, response.Choices, 1)
	assert.Equal(t, "Hello!", response.Choices[0].Message.Content)
	assert.Equal(t, 7, response.Usage.TotalTokens)
}

// TestCreateChatCompletion_EmptyMessages tests CreateChatCompletion with no messages.
func TestCreateChatCompletion_EmptyMessages(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("https://example.openai.azure.com"))
	require.NoError(t, err)

	response, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{})
	require.ErrorIs(t, err, ErrEmptyMessages)
	assert.Nil(t, response)
}

// TestCreateChatCompletion_UnexpectedStatus tests error handling for non-200 responses.
func TestCreateChatCompletion_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"Unauthorized"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	response, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)
	assert.Nil(t, response)
}

// TestCreateChatCompletion_RetriesOnThrottling tests that throttled requests are retried.
func TestCreateChatCompletion_RetriesOnThrottling(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":{"code":"429"}}`, http.StatusTooManyRequests)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{ID: "chatcmpl-2"})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	response, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "chatcmpl-2", response.ID)
	assert.Equal(t, int64(3), calls.Load())
}

// TestCreateChatCompletion_ThrottledAfterAllAttempts tests exhaustion of retry attempts.
func TestCreateChatCompletion_ThrottledAfterAllAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":"429"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	response, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.ErrorIs(t, err, ErrTooManyRequests)
	assert.Nil(t, response)
	assert.Equal(t, int64(3), calls.Load())
}

// TestCreateEmbeddings tests the CreateEmbeddings method.
func TestCreateEmbeddings(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/text-embedding-3-small/embeddings", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EmbeddingsResponse{
			Object: "list",
			Data: []Embedding{
				{Object: "embedding", Index: 0, Embedding: []float64{0.1, 0.2}},
			},
			Model: "text-embedding-3-small",
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	response, err := client.CreateEmbeddings(context.Background(), &EmbeddingsRequest{
		Input: []string{"hello world"},
	})
	require.NoError(t, err)

	require.Len(t, response.Data, 1)
	assert.Equal(t, []float64{0.1, 0.2}, response.Data[0].Embedding)
}

// TestCreateEmbeddings_EmptyInput tests CreateEmbeddings with no input.
func TestCreateEmbeddings_EmptyInput(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("https://example.openai.azure.com"))
	require.NoError(t, err)

	response, err := client.CreateEmbeddings(context.Background(), &EmbeddingsRequest{})
	require.ErrorIs(t, err, ErrEmptyEmbeddingsInput)
	assert.Nil(t, response)
}

// TestGetModel tests the GetModel method with caching.
func TestGetModel(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/openai/models/gpt-4o", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Model{
			ID:              "gpt-4o",
			Status:          "succeeded",
			LifecycleStatus: "generally-available",
			Capabilities:    ModelCapabilities{ChatCompletion: true, Inference: true},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		model, getErr := client.GetModel(context.Background(), "gpt-4o")
		require.NoError(t, getErr)
		assert.Equal(t, "gpt-4o", model.ID)
		assert.True(t, model.Capabilities.ChatCompletion)
	}

	// The second lookup is served from the cache.
	assert.Equal(t, int64(1), calls.Load())
}

// TestGetModel_NotFound tests GetModel for a missing model.
func TestGetModel_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"404"}}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	model, err := client.GetModel(context.Background(), "missing")
	require.ErrorIs(t, err, ErrModelNotFound)
	assert.Nil(t, model)
}

// TestListModels tests the ListModels method and cache population.
func TestListModels(t *testing.T) {
	t.Parallel()

	var modelCalls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/openai/models" {
			_ = json.NewEncoder(w).Encode(ListModelsResponse{
				Object: "list",
				Data: []*Model{
					{ID: "gpt-4o"},
					{ID: "text-embedding-3-small"},
				},
			})

			return
		}

		modelCalls.Add(1)
		_ = json.NewEncoder(w).Encode(Model{ID: "gpt-4o"})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)

	// Listed models are cached, so the per-model endpoint is never hit.
	model, err := client.GetModel(context.Background(), "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", model.ID)
	assert.Equal(t, int64(0), modelCalls.Load())
}

// TestNewClient_WithHTTPClient tests that a capture transport layered under the
// client observes the authenticated request.
func TestNewClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{ID: "chatcmpl-3"})
	}))
	defer server.Close()

	loggingClient := http_transport.NewLoggingClient(http.DefaultTransport, 0, 0)

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(loggingClient.HTTPClient()))
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)

	// The capture saw the api-key header injected above it.
	assert.Equal(t, "test-key", loggingClient.RequestHeaders()["Api-Key"])
	assert.Contains(t, string(loggingClient.RequestContent()), `"role":"user"`)
	assert.Contains(t, string(loggingClient.ResponseContent()), "chatcmpl-3")
}
