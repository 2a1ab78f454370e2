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


package vectorstore

import "context"

// Metadata carries the chunk provenance persisted alongside each vector.
type Metadata struct {
	Document  string // owning document identity
	Chunk     int    // chunk ordinal within the document
	LineStart int
	LineEnd   int
	Text      string // the chunk's literal text
}

// Record is the unit persisted in the store: a vector plus its metadata,
// under a deterministic id. Upserting an existing id overwrites the record.
type Record struct {
	ID       string
	Vector   []float32
	Metadata Metadata
}

// QueryMatch is a similarity query result, highest similarity first.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata Metadata
}

// Store is a namespaced key-vector store. Each document owns one namespace;
// namespaces isolate documents so similarity queries never cross document
// boundaries. Implementations must be thread-safe and commit each upsert and
// delete atomically, visible to subsequent queries.
type Store interface {
	// Upsert writes records into the namespace, creating it if needed.
	// Records with existing ids are overwritten.
	// Fails with ErrWriteFailed.
	Upsert(ctx context.Context, namespace string, records ...Record) error

	// Query returns up to topK records of the namespace most similar to the
	// vector, best first, with metadata included. An unknown namespace
	// yields zero matches, not an error.
	// Fails with ErrQueryFailed.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]QueryMatch, error)

	// ListNamespaces returns all namespaces currently known to the store in
	// a stable enumeration order.
	// Fails with ErrQueryFailed.
	ListNamespaces(ctx context.Context) ([]string, error)

	// DeleteNamespace removes a namespace and every record in it. Deleting
	// an unknown namespace is a no-op success.
	// Fails with ErrWriteFailed.
	DeleteNamespace(ctx context.Context, namespace string) error

	// Close releases resources held by the store.
	Close() error
}
