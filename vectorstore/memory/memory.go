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


// Package memory provides an in-process vectorstore.Store backed by cosine
// similarity over plain slices. It is used by tests and offline runs; data
// does not survive the process.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/poiesic/docquery/vectorstore"
)

// Store implements vectorstore.Store in memory.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]vectorstore.Record
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		namespaces: make(map[string]map[string]vectorstore.Record),
	}
}

// Upsert writes records into the namespace, overwriting existing ids.
func (s *Store) Upsert(ctx context.Context, namespace string, records ...vectorstore.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrWriteFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = make(map[string]vectorstore.Record)
		s.namespaces[namespace] = ns
	}

	for _, record := range records {
		for _, existing := range ns {
			if len(existing.Vector) != len(record.Vector) {
				return fmt.Errorf("%w: got %d, namespace %q has %d",
					vectorstore.ErrDimensionMismatch, len(record.Vector), namespace, len(existing.Vector))
			}
			break
		}
		ns[record.ID] = record
	}
	return nil
}

// Query returns up to topK records of the namespace ranked by cosine
// similarity to the vector. An unknown namespace yields zero matches.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.QueryMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrQueryFailed, err)
	}
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ns, ok := s.namespaces[namespace]
	if !ok {
		return nil, nil
	}

	matches := make([]vectorstore.QueryMatch, 0, len(ns))
	for _, record := range ns {
		matches = append(matches, vectorstore.QueryMatch{
			ID:       record.ID,
			Score:    cosineSimilarity(vector, record.Vector),
			Metadata: record.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// ListNamespaces returns all namespaces in lexicographic order.
func (s *Store) ListNamespaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrQueryFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteNamespace removes a namespace and its records. Unknown namespaces
// are a no-op.
func (s *Store) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrWriteFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.namespaces, namespace)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
