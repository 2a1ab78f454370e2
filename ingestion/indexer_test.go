package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/vectorstore/memory"
)

func chunksFor(texts ...string) []core.ChunkRecord {
	chunks := make([]core.ChunkRecord, len(texts))
	for i, text := range texts {
		chunks[i] = core.NewChunkRecord(i, text)
	}
	return chunks
}

func TestNewIndexer_RequiresDependencies(t *testing.T) {
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	_, err := NewIndexer(nil, embedder)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)

	_, err = NewIndexer(store, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIndex_WritesAllChunks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)

	result, err := indexer.Index(ctx, "notes.txt", chunksFor("A cat sat.", "A dog ran."))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChunkCount)

	query, err := embedder.EmbedText(ctx, "A cat sat.")
	require.NoError(t, err)
	matches, err := store.Query(ctx, "notes.txt", query, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "notes.txt-0", matches[0].ID)
	assert.Equal(t, "A cat sat.", matches[0].Metadata.Text)
	assert.Equal(t, 1, matches[0].Metadata.LineStart)
	assert.Equal(t, 15, matches[0].Metadata.LineEnd)
}

func TestIndex_ReindexOverwrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)

	_, err = indexer.Index(ctx, "notes.txt", chunksFor("A cat sat."))
	require.NoError(t, err)
	_, err = indexer.Index(ctx, "notes.txt", chunksFor("A cat sat."))
	require.NoError(t, err)

	query, err := embedder.EmbedText(ctx, "A cat sat.")
	require.NoError(t, err)
	matches, err := store.Query(ctx, "notes.txt", query, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestIndex_AbortsOnEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	calls := 0
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if calls > 1 {
			return nil, ai.ErrEmbeddingUnavailable
		}
		return []float32{1, 0}, nil
	}

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)

	result, err := indexer.Index(ctx, "notes.txt", chunksFor("A cat sat.", "A dog ran.", "A bird flew."))
	assert.ErrorIs(t, err, ai.ErrEmbeddingUnavailable)
	assert.Equal(t, 1, result.ChunkCount)

	matches, err := store.Query(ctx, "notes.txt", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestIndex_InputValidation(t *testing.T) {
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)

	_, err = indexer.Index(context.Background(), "", chunksFor("text"))
	assert.ErrorIs(t, err, core.ErrEmptyDocumentName)

	_, err = indexer.Index(context.Background(), "notes.txt", nil)
	assert.ErrorIs(t, err, ErrNoChunks)

	bad := []core.ChunkRecord{{Ordinal: -1, Text: "text"}}
	_, err = indexer.Index(context.Background(), "notes.txt", bad)
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestIndex_EmbedderFailurePropagates(t *testing.T) {
	store := memory.NewStore()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}

	indexer, err := NewIndexer(store, embedder)
	require.NoError(t, err)

	result, err := indexer.Index(context.Background(), "notes.txt", chunksFor("A cat sat."))
	require.Error(t, err)
	assert.Equal(t, 0, result.ChunkCount)
}
