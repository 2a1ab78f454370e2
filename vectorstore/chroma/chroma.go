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


// Package chroma implements vectorstore.Store on a Chroma server.
//
// Each namespace maps to one Chroma collection named with a common prefix,
// so namespace enumeration and deletion become collection listing and
// deletion. Collection handles are cached for the life of the store.
package chroma

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"github.com/poiesic/docquery/vectorstore"
)

// DefaultCollectionPrefix namespaces this pipeline's collections on a shared
// Chroma server.
const DefaultCollectionPrefix = "docquery-"

// Store implements vectorstore.Store using the Chroma v2 API.
type Store struct {
	client chromago.Client
	prefix string
	logger *slog.Logger

	mu          sync.Mutex
	collections map[string]chromago.Collection
}

var _ vectorstore.Store = (*Store)(nil)

// Config holds configuration for the Chroma store.
type Config struct {
	// URL is the Chroma server URL (e.g., "http://localhost:8000").
	URL string

	// CollectionPrefix prepends every namespace's collection name.
	// Defaults to DefaultCollectionPrefix if empty.
	CollectionPrefix string
}

// NewStore connects to a Chroma server.
//
// Returns vectorstore.Store interface to enforce abstraction.
func NewStore(config Config) (vectorstore.Store, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("chroma URL is required")
	}

	prefix := config.CollectionPrefix
	if prefix == "" {
		prefix = DefaultCollectionPrefix
	}

	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(config.URL))
	if err != nil {
		return nil, fmt.Errorf("creating chroma client: %w", err)
	}

	return &Store{
		client:      client,
		prefix:      prefix,
		logger:      slog.Default().With("component", "chroma-store"),
		collections: make(map[string]chromago.Collection),
	}, nil
}

// collection returns the cached collection handle for a namespace, creating
// the collection on first use.
func (s *Store) collection(ctx context.Context, namespace string) (chromago.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if col, ok := s.collections[namespace]; ok {
		return col, nil
	}

	col, err := s.client.GetOrCreateCollection(ctx, s.prefix+namespace)
	if err != nil {
		return nil, err
	}
	s.collections[namespace] = col
	return col, nil
}

// Upsert writes records into the namespace's collection, one per call so a
// mid-batch failure leaves every earlier record committed.
func (s *Store) Upsert(ctx context.Context, namespace string, records ...vectorstore.Record) error {
	col, err := s.collection(ctx, namespace)
	if err != nil {
		return fmt.Errorf("%w: namespace %q: %v", vectorstore.ErrWriteFailed, namespace, err)
	}

	for _, record := range records {
		metadata := chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("document", record.Metadata.Document),
			chromago.NewIntAttribute("chunk", int64(record.Metadata.Chunk)),
			chromago.NewIntAttribute("line_start", int64(record.Metadata.LineStart)),
			chromago.NewIntAttribute("line_end", int64(record.Metadata.LineEnd)),
		)

		err := col.Upsert(ctx,
			chromago.WithIDs(chromago.DocumentID(record.ID)),
			chromago.WithTexts(record.Metadata.Text),
			chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(record.Vector)),
			chromago.WithMetadatas(metadata),
		)
		if err != nil {
			return fmt.Errorf("%w: namespace %q id %q: %v",
				vectorstore.ErrWriteFailed, namespace, record.ID, err)
		}
	}
	return nil
}

// Query runs a top-K similarity query against the namespace's collection.
// An unknown namespace yields zero matches.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.QueryMatch, error) {
	if topK <= 0 {
		return nil, nil
	}

	exists, err := s.namespaceExists(ctx, namespace)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	col, err := s.collection(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: namespace %q: %v", vectorstore.ErrQueryFailed, namespace, err)
	}

	results, err := col.Query(ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chromago.WithNResults(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: namespace %q: %v", vectorstore.ErrQueryFailed, namespace, err)
	}

	var matches []vectorstore.QueryMatch
	documentGroups := results.GetDocumentsGroups()
	metadataGroups := results.GetMetadatasGroups()
	idGroups := results.GetIDGroups()

	if len(documentGroups) == 0 {
		return nil, nil
	}
	for i, doc := range documentGroups[0] {
		match := vectorstore.QueryMatch{
			Metadata: vectorstore.Metadata{
				Document: namespace,
				Text:     doc.ContentString(),
			},
		}
		if len(idGroups) > 0 && len(idGroups[0]) > i {
			match.ID = string(idGroups[0][i])
		}
		if len(metadataGroups) > 0 && len(metadataGroups[0]) > i {
			applyMetadata(&match.Metadata, metadataGroups[0][i], s.logger)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// ListNamespaces lists collections carrying the store's prefix and strips it.
func (s *Store) ListNamespaces(ctx context.Context) ([]string, error) {
	cols, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing collections: %v", vectorstore.ErrQueryFailed, err)
	}

	var namespaces []string
	for _, col := range cols {
		name := col.Name()
		if strings.HasPrefix(name, s.prefix) {
			namespaces = append(namespaces, strings.TrimPrefix(name, s.prefix))
		}
	}
	return namespaces, nil
}

// DeleteNamespace deletes the namespace's collection. Unknown namespaces are
// a no-op success.
func (s *Store) DeleteNamespace(ctx context.Context, namespace string) error {
	exists, err := s.namespaceExists(ctx, namespace)
	if err != nil {
		return fmt.Errorf("%w: namespace %q: %v", vectorstore.ErrWriteFailed, namespace, err)
	}
	if !exists {
		return nil
	}

	if err := s.client.DeleteCollection(ctx, s.prefix+namespace); err != nil {
		return fmt.Errorf("%w: namespace %q: %v", vectorstore.ErrWriteFailed, namespace, err)
	}

	s.mu.Lock()
	delete(s.collections, namespace)
	s.mu.Unlock()
	return nil
}

// Close releases the client and cached collection handles.
func (s *Store) Close() error {
	s.mu.Lock()
	s.collections = make(map[string]chromago.Collection)
	s.mu.Unlock()
	return s.client.Close()
}

func (s *Store) namespaceExists(ctx context.Context, namespace string) (bool, error) {
	namespaces, err := s.ListNamespaces(ctx)
	if err != nil {
		return false, err
	}
	for _, ns := range namespaces {
		if ns == namespace {
			return true, nil
		}
	}
	return false, nil
}

// applyMetadata copies the persisted chunk attributes onto a match. The
// DocumentMetadata type exposes no direct map accessor; round-tripping
// through JSON is the supported conversion.
func applyMetadata(metadata *vectorstore.Metadata, docMetadata chromago.DocumentMetadata, logger *slog.Logger) {
	jsonBytes, err := json.Marshal(docMetadata)
	if err != nil {
		logger.Warn("could not marshal chroma metadata", "err", err)
		return
	}
	var raw map[string]any
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		logger.Warn("could not unmarshal chroma metadata", "err", err)
		return
	}

	if document, ok := raw["document"].(string); ok && document != "" {
		metadata.Document = document
	}
	if chunk, ok := raw["chunk"].(float64); ok {
		metadata.Chunk = int(chunk)
	}
	if lineStart, ok := raw["line_start"].(float64); ok {
		metadata.LineStart = int(lineStart)
	}
	if lineEnd, ok := raw["line_end"].(float64); ok {
		metadata.LineEnd = int(lineEnd)
	}
}
