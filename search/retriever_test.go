package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/vectorstore"
	"github.com/poiesic/docquery/vectorstore/memory"
)

// flakyStore wraps a Store and fails queries for selected namespaces.
type flakyStore struct {
	vectorstore.Store

	mu      sync.Mutex
	failing map[string]bool
}

func (f *flakyStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.QueryMatch, error) {
	f.mu.Lock()
	failing := f.failing[namespace]
	f.mu.Unlock()
	if failing {
		return nil, errors.New("namespace unavailable")
	}
	return f.Store.Query(ctx, namespace, vector, topK)
}

// recordingMonitor collects callbacks for assertions.
type recordingMonitor struct {
	mu         sync.Mutex
	started    bool
	namespaces []string
	queried    []string
	failed     []string
	finished   bool
}

func (m *recordingMonitor) Start(query string, namespaces []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	m.namespaces = namespaces
}

func (m *recordingMonitor) NamespaceQueried(namespace string, matches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queried = append(m.queried, namespace)
}

func (m *recordingMonitor) NamespaceFailed(namespace string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, namespace)
}

func (m *recordingMonitor) Finish(matches []core.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = true
}

func seedStore(t *testing.T, embedder ai.Embedder, store vectorstore.Store, namespace string, texts ...string) {
	t.Helper()
	ctx := context.Background()
	for i, text := range texts {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		require.NoError(t, store.Upsert(ctx, namespace, vectorstore.Record{
			ID:     core.VectorRecordID(namespace, i),
			Vector: vector,
			Metadata: vectorstore.Metadata{
				Document:  namespace,
				Chunk:     i,
				LineStart: i*core.LinesPerChunk + 1,
				LineEnd:   (i + 1) * core.LinesPerChunk,
				Text:      text,
			},
		}))
	}
}

func TestNewRetriever_RequiresDependencies(t *testing.T) {
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	_, err := NewRetriever(nil, embedder)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)

	_, err = NewRetriever(store, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestRetrieve_FansOutOverNamespaces(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	seedStore(t, embedder, store, "animals.txt", "A cat sat.", "A dog ran.")
	seedStore(t, embedder, store, "weather.txt", "Rain fell all day.")

	retriever, err := NewRetriever(store, embedder)
	require.NoError(t, err)
	defer retriever.Release()

	matches, err := retriever.Retrieve(ctx, "A cat sat.", 2)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// namespace enumeration order, rank 1 first within each document
	assert.Equal(t, "animals.txt", matches[0].Document)
	assert.Equal(t, 1, matches[0].Rank)
	assert.Equal(t, "A cat sat.", matches[0].Text)
	assert.Equal(t, "animals.txt", matches[1].Document)
	assert.Equal(t, 2, matches[1].Rank)
	assert.Equal(t, "weather.txt", matches[2].Document)
	assert.Equal(t, 1, matches[2].Rank)
}

func TestRetrieve_EmptyStore(t *testing.T) {
	retriever, err := NewRetriever(memory.NewStore(), mock.NewMockEmbedder())
	require.NoError(t, err)
	defer retriever.Release()

	matches, err := retriever.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRetrieve_IsolatesNamespaceFailures(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	seedStore(t, embedder, base, "good.txt", "A cat sat.")
	seedStore(t, embedder, base, "bad.txt", "A dog ran.")
	store := &flakyStore{Store: base, failing: map[string]bool{"bad.txt": true}}

	retriever, err := NewRetriever(store, embedder)
	require.NoError(t, err)
	defer retriever.Release()

	monitor := &recordingMonitor{}
	matches, err := retriever.RetrieveWithMonitor(ctx, "A cat sat.", 3, monitor)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "good.txt", matches[0].Document)

	assert.True(t, monitor.started)
	assert.Equal(t, []string{"good.txt"}, monitor.queried)
	assert.Equal(t, []string{"bad.txt"}, monitor.failed)
	assert.True(t, monitor.finished)
}

func TestRetrieve_AllNamespacesFailed(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	seedStore(t, embedder, base, "a.txt", "A cat sat.")
	seedStore(t, embedder, base, "b.txt", "A dog ran.")
	store := &flakyStore{Store: base, failing: map[string]bool{"a.txt": true, "b.txt": true}}

	retriever, err := NewRetriever(store, embedder)
	require.NoError(t, err)
	defer retriever.Release()

	_, err = retriever.Retrieve(ctx, "A cat sat.", 3)
	assert.ErrorIs(t, err, ErrAllNamespacesFailed)
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, ai.ErrEmbeddingUnavailable
	}

	retriever, err := NewRetriever(memory.NewStore(), embedder)
	require.NoError(t, err)
	defer retriever.Release()

	_, err = retriever.Retrieve(context.Background(), "query", 3)
	assert.ErrorIs(t, err, ai.ErrEmbeddingUnavailable)
}
