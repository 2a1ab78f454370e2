package search

import "errors"

var (
	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrAllNamespacesFailed is returned when every queried namespace failed.
	ErrAllNamespacesFailed = errors.New("all namespace queries failed")
)
