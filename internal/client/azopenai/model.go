package azopenai

// ChatMessage represents a single message in a chat completion conversation.
type ChatMessage struct {
	// Role is the author of the message: "system", "user", "assistant", or "tool".
	Role string `json:"role"`
	// Content is the text content of the message.
	Content string `json:"content"`
}

// ChatCompletionRequest represents the request body for the chat completions endpoint.
type ChatCompletionRequest struct {
	// Messages is the conversation so far.
	Messages []ChatMessage `json:"messages"`
	// MaxTokens limits the number of tokens generated, when positive.
	MaxTokens int `json:"max_tokens,omitempty"`
	// Temperature controls sampling randomness, when set.
	Temperature *float64 `json:"temperature,omitempty"`
	// User is an opaque end-user identifier for abuse monitoring.
	User string `json:"user,omitempty"`
}

// ChatChoice represents a single generated completion choice.
type ChatChoice struct {
	// Index is the position of the choice in the response.
	Index int `json:"index"`
	// Message is the generated message.
	Message ChatMessage `json:"message"`
	// FinishReason explains why generation stopped, e.g. "stop" or "length".
	FinishReason string `json:"finish_reason"`
}

// Usage represents token accounting for a completed request.
type Usage struct {
	// PromptTokens is the number of tokens in the prompt.
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens is the number of tokens generated.
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens is the total number of tokens consumed.
	TotalTokens int `json:"total_tokens"`
}

// ChatCompletionResponse represents the response body of the chat completions endpoint.
type ChatCompletionResponse struct {
	// ID uniquely identifies the completion.
	ID string `json:"id"`
	// Object is the response object type.
	Object string `json:"object"`
	// Created is the creation timestamp in Unix seconds.
	Created int64 `json:"created"`
	// Model is the model that produced the completion.
	Model string `json:"model"`
	// Choices contains the generated completions.
	Choices []ChatChoice `json:"choices"`
	// Usage carries token accounting, when returned.
	Usage *Usage `json:"usage,omitempty"`
}

// EmbeddingsRequest represents the request body for the embeddings endpoint.
type EmbeddingsRequest struct {
	// Input is the list of texts to embed.
	Input []string `json:"input"`
	// User is an opaque end-user identifier for abuse monitoring.
	User string `json:"user,omitempty"`
}

// Embedding represents a single embedding vector.
type Embedding struct {
	// Object is the embedding object type.
	Object string `json:"object"`
	// Index is the position of the input this vector corresponds to.
	Index int `json:"index"`
	// Embedding is the vector itself.
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response body of the embeddings endpoint.
type EmbeddingsResponse struct {
	// Object is the response object type.
	Object string `json:"object"`
	// Data contains one embedding per input.
	Data []Embedding `json:"data"`
	// Model is the model that produced the embeddings.
	Model string `json:"model"`
	// Usage carries token accounting, when returned.
	Usage *Usage `json:"usage,omitempty"`
}

// ModelCapabilities describes what a model supports.
type ModelCapabilities struct {
	// ChatCompletion reports whether the model supports chat completions.
	ChatCompletion bool `json:"chat_completion"`
	// Completion reports whether the model supports legacy completions.
	Completion bool `json:"completion"`
	// Embeddings reports whether the model supports embeddings.
	Embeddings bool `json:"embeddings"`
	// FineTune reports whether the model can be fine-tuned.
	FineTune bool `json:"fine_tune"`
	// Inference reports whether the model can be deployed for inference.
	Inference bool `json:"inference"`
}

// Model represents metadata about a model available on the resource.
type Model struct {
	// ID is the model identifier.
	ID string `json:"id"`
	// Object is the model object type.
	Object string `json:"object"`
	// Status is the model availability status.
	Status string `json:"status"`
	// CreatedAt is the creation timestamp in Unix seconds.
	CreatedAt int64 `json:"created_at"`
	// LifecycleStatus reports where the model is in its lifecycle,
	// e.g. "generally-available" or "preview".
	LifecycleStatus string `json:"lifecycle_status"`
	// Capabilities describes what the model supports.
	Capabilities ModelCapabilities `json:"capabilities"`
}

// ListModelsResponse represents the response body of the models listing endpoint.
type ListModelsResponse struct {
	// Object is the response object type.
	Object string `json:"object"`
	// Data contains the available models.
	Data []*Model `json:"data"`
}

// FetchJSONResult wraps a decoded response together with the HTTP status code.
type FetchJSONResult[T any] struct {
	// Data is the decoded response body, nil when decoding failed.
	Data *T
	// StatusCode is the HTTP status code of the response.
	StatusCode int
}
