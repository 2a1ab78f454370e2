// Package ingestion writes chunked documents into the vector store.
//
// The Indexer embeds each chunk and upserts it into the document's
// namespace in ordinal order. Indexing aborts on the first failure and
// reports how many chunks were committed before it, so a partially indexed
// document can be diagnosed or re-indexed.
package ingestion
