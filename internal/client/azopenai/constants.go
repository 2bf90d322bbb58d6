package azopenai

const (
	// chatCompletionsURIFormat is the URI path format for the chat completions endpoint.
	chatCompletionsURIFormat = "openai/deployments/%s/chat/completions"
	// embeddingsURIFormat is the URI path format for the embeddings endpoint.
	embeddingsURIFormat = "openai/deployments/%s/embeddings"
	// modelsURI is the URI path for the models listing endpoint.
	modelsURI = "openai/models"

	// apiVersionParam is the query parameter carrying the REST API version.
	apiVersionParam = "api-version"
)

const (
	// modelsCacheSize defines the maximum number of model entries to cache.
	// An Azure OpenAI resource exposes at most a few hundred models.
	modelsCacheSize = 256
)
