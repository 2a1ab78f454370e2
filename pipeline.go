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


package docquery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/openai"
	"github.com/poiesic/docquery/answer"
	"github.com/poiesic/docquery/chunker"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/extract"
	"github.com/poiesic/docquery/ingestion"
	"github.com/poiesic/docquery/search"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/storage/badger"
	"github.com/poiesic/docquery/vectorstore"
)

// Pipeline wires the document question-answering stages together: extract,
// chunk, index, retrieve, synthesize.
type Pipeline struct {
	backend   *badger.Backend // set only when the pipeline opened it
	documents storage.DocumentStore
	vectors   vectorstore.Store
	provider  ai.Provider
	extractor *extract.Extractor
	chunker   *chunker.Chunker
	indexer   *ingestion.Indexer
	retriever *search.Retriever
	synth     *answer.Synthesizer
	topK      int
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	maxChunkChars int
	topK          int
	contextBudget int
	aiConfig      *ai.Config
}

// WithMaxChunkChars sets the soft chunk size bound in characters.
// Default is chunker.DefaultMaxChunkChars.
func WithMaxChunkChars(max int) PipelineOption {
	return func(o *pipelineOptions) {
		o.maxChunkChars = max
	}
}

// WithTopK sets the per-document match count used by Query.
// Default is search.DefaultTopK.
func WithTopK(topK int) PipelineOption {
	return func(o *pipelineOptions) {
		o.topK = topK
	}
}

// WithContextBudget caps the synthesized context in characters.
// Default is answer.DefaultContextBudget.
func WithContextBudget(budget int) PipelineOption {
	return func(o *pipelineOptions) {
		o.contextBudget = budget
	}
}

// WithAIConfig sets the AI gateway configuration used by Open.
// Default is ai.DefaultConfig(). New ignores this option since it receives
// a provider directly.
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.aiConfig = config
	}
}

// New creates a Pipeline from the given stores and AI provider.
// The pipeline takes ownership of all three and closes them with Close.
func New(documents storage.DocumentStore, vectors vectorstore.Store, provider ai.Provider, opts ...PipelineOption) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	options := &pipelineOptions{
		maxChunkChars: chunker.DefaultMaxChunkChars,
		topK:          search.DefaultTopK,
		contextBudget: answer.DefaultContextBudget,
	}
	for _, opt := range opts {
		opt(options)
	}

	indexer, err := ingestion.NewIndexer(vectors, provider.Embedder())
	if err != nil {
		return nil, err
	}

	retriever, err := search.NewRetriever(vectors, provider.Embedder())
	if err != nil {
		return nil, err
	}

	synth, err := answer.NewSynthesizer(provider.Generator(),
		answer.WithContextBudget(options.contextBudget))
	if err != nil {
		retriever.Release()
		return nil, err
	}

	return &Pipeline{
		documents: documents,
		vectors:   vectors,
		provider:  provider,
		extractor: extract.New(),
		chunker:   chunker.New(chunker.WithMaxChunkChars(options.maxChunkChars)),
		indexer:   indexer,
		retriever: retriever,
		synth:     synth,
		topK:      options.topK,
		logger:    slog.Default().With("component", "pipeline"),
	}, nil
}

// Open creates a Pipeline with a BadgerDB document store at filePath and an
// OpenAI-compatible AI provider. The vector store is supplied by the caller.
func Open(filePath string, vectors vectorstore.Store, opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{aiConfig: ai.DefaultConfig()}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		documents.Close()
		backend.Close()
		return nil, err
	}

	p, err := New(documents, vectors, provider, opts...)
	if err != nil {
		provider.Close()
		documents.Close()
		backend.Close()
		return nil, err
	}
	p.backend = backend
	return p, nil
}

// Close releases the pipeline and everything it owns.
func (p *Pipeline) Close() error {
	p.retriever.Release()

	if err := p.provider.Close(); err != nil {
		p.logger.Error("error closing AI provider", "err", err)
	}
	if err := p.documents.Close(); err != nil {
		p.logger.Error("error closing document store", "err", err)
		return err
	}
	if err := p.vectors.Close(); err != nil {
		p.logger.Error("error closing vector store", "err", err)
		return err
	}
	if p.backend != nil {
		if err := p.backend.Close(); err != nil {
			p.logger.Error("error closing storage backend", "err", err)
			return err
		}
	}
	return nil
}

// IndexDocument chunks the text and indexes it under the document's
// namespace. Text that yields no chunks is a no-op reporting zero chunks.
func (p *Pipeline) IndexDocument(ctx context.Context, documentID, text string) (ingestion.IndexResult, error) {
	if err := core.ValidateDocumentName(documentID); err != nil {
		return ingestion.IndexResult{}, err
	}

	chunks := p.chunker.Chunk(text)
	if len(chunks) == 0 {
		return ingestion.IndexResult{}, nil
	}
	return p.indexer.Index(ctx, documentID, chunks)
}

// Query answers a question from the indexed documents. When retrieval
// yields nothing the answer is the fixed not-found text with empty
// provenance.
func (p *Pipeline) Query(ctx context.Context, text string) (core.Answer, error) {
	matches, err := p.retriever.Retrieve(ctx, text, p.topK)
	if err != nil {
		return core.Answer{}, err
	}
	return p.synth.Synthesize(ctx, text, matches)
}

// DeleteDocument removes a document's vectors and its stored upload.
// Deleting an unknown document is a no-op success.
func (p *Pipeline) DeleteDocument(ctx context.Context, documentID string) error {
	if err := core.ValidateDocumentName(documentID); err != nil {
		return err
	}

	if err := p.vectors.DeleteNamespace(ctx, documentID); err != nil {
		return err
	}

	err := p.documents.DeleteDocument(ctx, documentID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// ListDocuments lists stored documents by name. The document store, not the
// vector store, is the source of truth for what exists.
func (p *Pipeline) ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error) {
	return p.documents.ListDocuments(ctx)
}

// IngestOptions controls Ingest behavior.
type IngestOptions struct {
	// Replace allows overwriting an existing document of the same name.
	Replace bool
}

// Ingest stores an uploaded file and indexes its text: format detection by
// extension, text extraction, chunking, then embedding into the document's
// namespace. Re-ingesting with Replace clears the namespace first so stale
// chunks from a longer previous version cannot survive.
func (p *Pipeline) Ingest(ctx context.Context, filename string, data []byte, opts IngestOptions) (ingestion.IndexResult, error) {
	if err := core.ValidateDocumentName(filename); err != nil {
		return ingestion.IndexResult{}, err
	}

	format, err := extract.DetectFormat(filename)
	if err != nil {
		return ingestion.IndexResult{}, err
	}

	exists, err := p.documents.DocumentExists(ctx, filename)
	if err != nil {
		return ingestion.IndexResult{}, err
	}
	if exists && !opts.Replace {
		return ingestion.IndexResult{}, fmt.Errorf("%w: %s", ErrDocumentExists, filename)
	}

	text, err := p.extractor.Extract(data, format)
	if err != nil {
		return ingestion.IndexResult{}, err
	}

	if _, err := p.documents.PutDocument(ctx, &core.StoredDocument{
		Name:    filename,
		Format:  format,
		Content: data,
	}); err != nil {
		return ingestion.IndexResult{}, err
	}

	if exists {
		if err := p.vectors.DeleteNamespace(ctx, filename); err != nil {
			return ingestion.IndexResult{}, err
		}
	}

	result, err := p.IndexDocument(ctx, filename, text)
	if err != nil {
		return result, err
	}

	p.logger.Info("document ingested",
		"document", filename, "format", format.String(), "chunks", result.ChunkCount)
	return result, nil
}

// DocumentStore exposes the underlying document store.
func (p *Pipeline) DocumentStore() storage.DocumentStore {
	return p.documents
}

// VectorStore exposes the underlying vector store.
func (p *Pipeline) VectorStore() vectorstore.Store {
	return p.vectors
}
