// Package docquery implements a question-answering pipeline over uploaded
// documents.
//
// Documents are split into sentence-aligned chunks, embedded, and indexed
// into a per-document vector store namespace. Queries are embedded once,
// fanned out over all namespaces, and the retrieved chunks ground a
// generated answer with per-chunk provenance.
//
// The Pipeline type at the root wires the stages together; the packages
// underneath it can also be used individually:
//
//   - extract: document bytes to plain text (TXT, PDF, HTML)
//   - chunker: sentence-aligned chunking
//   - ingestion: embedding and indexing
//   - search: multi-namespace retrieval
//   - answer: grounded answer synthesis
//   - storage: uploaded document persistence (BadgerDB)
//   - vectorstore: namespaced vector persistence (Chroma or in-memory)
//   - ai: embedding and generation gateways (OpenAI-compatible)
package docquery
