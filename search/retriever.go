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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/vectorstore"
)

// DefaultTopK is the per-namespace match count used when the caller passes
// a non-positive topK.
const DefaultTopK = 3

// Retriever finds document chunks relevant to a query by fanning the query
// out over every document namespace in the vector store.
type Retriever struct {
	store    vectorstore.Store
	embedder ai.Embedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent namespace queries.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Retriever) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// NewRetriever creates a new Retriever.
func NewRetriever(store vectorstore.Store, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		store:    store,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Release frees the worker pool. The Retriever must not be used afterwards.
func (r *Retriever) Release() {
	r.pool.Release()
}

// Retrieve returns up to topK matches per indexed document, ranked within
// each document by similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]core.Match, error) {
	return r.RetrieveWithMonitor(ctx, query, topK, nil)
}

// RetrieveWithMonitor retrieves matches with monitoring. The monitor
// receives callbacks as each namespace completes.
//
// The query is embedded once and fanned out over all namespaces
// concurrently. A failing namespace is skipped and reported to the monitor;
// retrieval fails only if the query cannot be embedded, the namespaces
// cannot be listed, or every namespace fails.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) ([]core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	namespaces, err := r.store.ListNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing namespaces: %w", err)
	}

	monitor.Start(query, namespaces)

	if len(namespaces) == 0 {
		monitor.Finish(nil)
		return nil, nil
	}

	// Results are slotted by namespace position so the flattened output
	// follows the store's enumeration order regardless of completion order.
	type namespaceResult struct {
		matches []vectorstore.QueryMatch
		err     error
	}
	results := make([]namespaceResult, len(namespaces))

	var wg sync.WaitGroup
	for i, namespace := range namespaces {
		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			matches, err := r.store.Query(ctx, namespace, vector, topK)
			results[i] = namespaceResult{matches: matches, err: err}
		})
		if submitErr != nil {
			results[i] = namespaceResult{err: submitErr}
			wg.Done()
		}
	}
	wg.Wait()

	var (
		matches []core.Match
		failed  int
	)
	for i, namespace := range namespaces {
		result := results[i]
		if result.err != nil {
			failed++
			r.logger.Warn("namespace query failed", "namespace", namespace, "err", result.err)
			monitor.NamespaceFailed(namespace, result.err)
			continue
		}
		monitor.NamespaceQueried(namespace, len(result.matches))
		for rank, match := range result.matches {
			matches = append(matches, core.Match{
				Document:  match.Metadata.Document,
				Text:      match.Metadata.Text,
				LineStart: match.Metadata.LineStart,
				LineEnd:   match.Metadata.LineEnd,
				Rank:      rank + 1,
			})
		}
	}

	if failed == len(namespaces) {
		return nil, fmt.Errorf("%w: %d namespaces", ErrAllNamespacesFailed, failed)
	}

	monitor.Finish(matches)
	r.logger.Debug("retrieval complete",
		"query_chars", len(query), "namespaces", len(namespaces), "failed", failed, "matches", len(matches))
	return matches, nil
}
