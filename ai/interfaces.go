package ai

import "context"

// Embedder converts text into fixed-dimension vector embeddings for
// similarity search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has the dimension the embedder was configured with.
	// Fails with ErrEmbeddingUnavailable on any transport or quota error.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in input order.
	// Fails with ErrEmbeddingUnavailable on any transport or quota error.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a natural-language completion for a prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate invokes the model with a system instruction and a user prompt
	// at the given sampling temperature, returning the completion text.
	// Fails with ErrGenerationUnavailable on any transport or quota error.
	Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float64) (string, error)
}

// Provider aggregates the AI gateways for convenient initialization and
// lifecycle management. A provider is created once at process start, held for
// the process lifetime, and never re-initialized implicitly.
type Provider interface {
	// Embedder returns the embedding gateway.
	Embedder() Embedder

	// Generator returns the generation gateway.
	Generator() Generator

	// Close releases resources held by the provider and its gateways.
	Close() error
}
