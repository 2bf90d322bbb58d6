package azopenai

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrModelNotFound indicates that the requested model was not found.
	ErrModelNotFound = errors.New("model not found")
	// ErrEmptyEmbeddingsInput indicates that an embeddings request carried no input.
	ErrEmptyEmbeddingsInput = errors.New("embeddings input cannot be empty")
	// ErrEmptyMessages indicates that a chat completion request carried no messages.
	ErrEmptyMessages = errors.New("chat completion messages cannot be empty")
	// ErrTooManyRequests indicates the request was throttled after all retry attempts.
	ErrTooManyRequests = errors.New("request was throttled after all retry attempts")
)
