// Package mock provides test doubles for the ai gateway interfaces.
//
// The mock embedder produces deterministic FNV-seeded vectors so tests get
// stable similarity behavior without an embedding service; the mock generator
// records its calls and returns a canned answer unless a GenerateFunc is
// injected.
package mock
