package ai

import "errors"

var (
	// ErrEmbeddingUnavailable indicates the embedding gateway failed.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation gateway failed.
	ErrGenerationUnavailable = errors.New("generation service unavailable")
)
