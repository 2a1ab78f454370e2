package storage

import (
	"context"

	"github.com/poiesic/docquery/core"
)

// DocumentStore provides operations for managing uploaded documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentStore interface {
	// PutDocument stores a document, overwriting any existing document with
	// the same name. Preserves UploadedAt on overwrite and refreshes
	// UpdatedAt. Computes ContentHash if not already set.
	// Returns the document with timestamps and hash populated.
	PutDocument(ctx context.Context, doc *core.StoredDocument) (*core.StoredDocument, error)

	// GetDocument retrieves a document by name.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, name string) (*core.StoredDocument, error)

	// ListDocuments returns metadata for all stored documents, ordered by
	// name. Content is not loaded.
	ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error)

	// DocumentExists reports whether a document with the given name exists.
	DocumentExists(ctx context.Context, name string) (bool, error)

	// DeleteDocument removes a document by name.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, name string) error

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
