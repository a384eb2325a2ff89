package domain

import "errors"

var (
	// ErrRecordNotFound signals a missing durable-index record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a chat completion provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrFetchFailed signals a file or link content fetch failure.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrIndexUnavailable signals that the durable vector index cannot be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
