// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/vectorstore"
)

// Indexer embeds document chunks and writes them into the vector store.
type Indexer struct {
	store    vectorstore.Store
	embedder ai.Embedder
	logger   *slog.Logger
}

// IndexResult reports the outcome of an indexing run.
type IndexResult struct {
	// ChunkCount is the number of chunks committed to the vector store.
	// On error it counts the chunks written before the failure.
	ChunkCount int
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndexer creates a new Indexer.
func NewIndexer(store vectorstore.Store, embedder ai.Embedder, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Indexer{
		store:    store,
		embedder: embedder,
		logger:   slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Index embeds the chunks of a document and upserts them into the
// document's namespace, one record per chunk in ordinal order. The first
// embedding or store failure aborts the run; the result reports how many
// chunks were committed before it.
func (ix *Indexer) Index(ctx context.Context, documentID string, chunks []core.ChunkRecord) (IndexResult, error) {
	if err := core.ValidateDocumentName(documentID); err != nil {
		return IndexResult{}, err
	}
	if len(chunks) == 0 {
		return IndexResult{}, ErrNoChunks
	}
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return IndexResult{}, err
		}
	}

	ix.logger.Info("indexing document", "document", documentID, "chunks", len(chunks))

	result := IndexResult{}
	for _, chunk := range chunks {
		vector, err := ix.embedder.EmbedText(ctx, chunk.Text)
		if err != nil {
			return result, fmt.Errorf("embedding chunk %d of %q: %w", chunk.Ordinal, documentID, err)
		}

		record := vectorstore.Record{
			ID:     core.VectorRecordID(documentID, chunk.Ordinal),
			Vector: vector,
			Metadata: vectorstore.Metadata{
				Document:  documentID,
				Chunk:     chunk.Ordinal,
				LineStart: chunk.LineStart,
				LineEnd:   chunk.LineEnd,
				Text:      chunk.Text,
			},
		}

		if err := ix.store.Upsert(ctx, documentID, record); err != nil {
			return result, fmt.Errorf("storing chunk %d of %q: %w", chunk.Ordinal, documentID, err)
		}
		result.ChunkCount++
	}

	ix.logger.Debug("document indexed", "document", documentID, "chunks", result.ChunkCount)
	return result, nil
}
