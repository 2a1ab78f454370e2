// Package search retrieves document chunks relevant to a query.
//
// The Retriever embeds the query once, fans it out over every document
// namespace with a worker pool, and flattens the per-namespace results in
// namespace enumeration order. Individual namespace failures are isolated;
// see RetrieveWithMonitor for the exact policy.
package search
