package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "docquery-db", cfg.DBPath)
	assert.Equal(t, "chroma", cfg.VectorStore.Type)
	require.NotNil(t, cfg.VectorStore.Chroma)
	assert.Equal(t, "http://localhost:8000", cfg.VectorStore.Chroma.URL)
	assert.Equal(t, "DOCQUERY_API_TOKEN", cfg.AI.TokenEnv)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docquery.yaml")
	content := `db_path: /var/lib/docquery
vector_store:
  type: memory
ai:
  embedding_host: http://embed:11434/v1
  embedding_model: nomic-embed-text
chunker:
  max_chunk_chars: 600
query:
  top_k: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/docquery", cfg.DBPath)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "http://embed:11434/v1", cfg.AI.EmbeddingHost)
	assert.Equal(t, 600, cfg.Chunker.MaxChunkChars)
	assert.Equal(t, 5, cfg.Query.TopK)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [broken"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}
