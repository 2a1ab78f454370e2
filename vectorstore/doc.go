// Package vectorstore defines the namespaced vector store contract the
// pipeline persists chunk embeddings into.
//
// Two implementations are provided:
//
//   - vectorstore/chroma: production backend on a Chroma server, one
//     collection per namespace
//   - vectorstore/memory: in-process cosine-similarity store for tests and
//     offline runs
//
// The store exclusively owns persisted records; the pipeline never caches
// them beyond a single request.
package vectorstore
