package azopenai

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	http_transport "github.com/alexmanie/sk-tracing-utils/internal/transport/http"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// Client defines the interface for interacting with the Azure OpenAI API.
type Client interface {
	// CreateChatCompletion generates a chat completion on the configured deployment.
	CreateChatCompletion(ctx context.Context, request *ChatCompletionRequest) (*ChatCompletionResponse, error)
	// CreateEmbeddings generates embeddings on the configured embeddings deployment.
	CreateEmbeddings(ctx context.Context, request *EmbeddingsRequest) (*EmbeddingsResponse, error)
	// GetBaseURL returns the base URL of the Azure OpenAI resource.
	GetBaseURL() string
	// GetModel retrieves metadata for a specific model.
	GetModel(ctx context.Context, modelID string) (*Model, error)
	// ListModels retrieves metadata for all models available on the resource.
	ListModels(ctx context.Context) ([]*Model, error)
}

// ClientImpl implements the Client interface for interacting with the Azure OpenAI API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for API requests.
	baseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// modelsCache caches model metadata to reduce duplicate API calls for the same models.
	modelsCache *lru.Cache[string, *Model]
}

// NewClient creates and returns a new instance of ClientImpl.
// Options may replace the HTTP client; the api-key injector is layered over
// whatever transport chain ends up in use, so authentication is applied
// uniformly and remains visible to capture transports underneath it.
func NewClient(cfg *config.Config, opts ...Option) (Client, error) {
	baseURL, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}

	client := &ClientImpl{
		cfg:     cfg,
		baseURL: baseURL.String(),
		httpClient: &http.Client{
			Timeout: cfg.ParsedRequestTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	// Shallow-copy the client so layering the injector never mutates a client
	// shared with the caller.
	credentialProvider := utils.NewStaticCredentialProvider(cfg.APIKey)
	authenticated := *client.httpClient

	next := authenticated.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	authenticated.Transport = http_transport.NewAPIKeyInjector(next, credentialProvider)
	client.httpClient = &authenticated

	modelsCache, err := lru.New[string, *Model](modelsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create models cache: %w", err)
	}

	client.modelsCache = modelsCache

	return client, nil
}

// CreateChatCompletion generates a chat completion on the configured deployment.
// Requests rejected with HTTP 429 are retried with a bounded random pause.
func (c *ClientImpl) CreateChatCompletion(
	ctx context.Context,
	request *ChatCompletionRequest,
) (*ChatCompletionResponse, error) {
	if request == nil || len(request.Messages) == 0 {
		return nil, ErrEmptyMessages
	}

	uri := fmt.Sprintf(chatCompletionsURIFormat, c.cfg.Deployment)

	result, err := postJSONWithRetry[ChatCompletionResponse](c, ctx, uri, request)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// CreateEmbeddings generates embeddings on the configured embeddings deployment.
// Requests rejected with HTTP 429 are retried with a bounded random pause.
func (c *ClientImpl) CreateEmbeddings(
	ctx context.Context,
	request *EmbeddingsRequest,
) (*EmbeddingsResponse, error) {
	if request == nil || len(request.Input) == 0 {
		return nil, ErrEmptyEmbeddingsInput
	}

	uri := fmt.Sprintf(embeddingsURIFormat, c.cfg.EmbeddingDeployment)

	result, err := postJSONWithRetry[EmbeddingsResponse](c, ctx, uri, request)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetBaseURL returns the base URL of the Azure OpenAI resource.
func (c *ClientImpl) GetBaseURL() string {
	return c.baseURL
}

// GetModel retrieves metadata for a specific model.
// Uses an LRU cache to avoid redundant API calls for the same models.
func (c *ClientImpl) GetModel(ctx context.Context, modelID string) (*Model, error) {
	if cached, ok := c.modelsCache.Get(modelID); ok {
		logger.Debugf(ctx, "Model cache hit for ID: %s", modelID)

		return cached, nil
	}

	result, err := fetchJSON[Model](c, ctx, modelsURI+"/"+url.PathEscape(modelID))
	if err != nil {
		if result != nil && result.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
		}

		return nil, err
	}

	c.modelsCache.Add(modelID, result.Data)

	return result.Data, nil
}

// ListModels retrieves metadata for all models available on the resource.
// Fetched models are stored in the cache for later GetModel lookups.
func (c *ClientImpl) ListModels(ctx context.Context) ([]*Model, error) {
	result, err := fetchJSON[ListModelsResponse](c, ctx, modelsURI)
	if err != nil {
		return nil, err
	}

	for _, model := range result.Data.Data {
		c.modelsCache.Add(model.ID, model)
	}

	return result.Data.Data, nil
}
