package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ChromaConfig contains connection details for a Chroma vector store.
type ChromaConfig struct {
	URL              string `yaml:"url"`
	CollectionPrefix string `yaml:"collection_prefix"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"` // "chroma" or "memory"
	Chroma *ChromaConfig `yaml:"chroma,omitempty"`
}

// AIConfig configures the embedding and generation gateways.
type AIConfig struct {
	EmbeddingHost   string `yaml:"embedding_host"`
	GenerationHost  string `yaml:"generation_host"`
	EmbeddingModel  string `yaml:"embedding_model"`
	GenerationModel string `yaml:"generation_model"`
	Dimension       int    `yaml:"dimension"`
	TokenEnv        string `yaml:"token_env"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	MaxChunkChars int `yaml:"max_chunk_chars"`
}

// QueryConfig configures the retrieval and synthesis stages.
type QueryConfig struct {
	TopK          int `yaml:"top_k"`
	ContextBudget int `yaml:"context_budget"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DBPath      string            `yaml:"db_path"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	AI          AIConfig          `yaml:"ai"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Query       QueryConfig       `yaml:"query"`
}

// loadConfig reads a config from the specified path. If the file does not
// exist, returns defaults.
func loadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DBPath == "" {
		cfg.DBPath = "docquery-db"
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "chroma"
	}
	if cfg.VectorStore.Type == "chroma" {
		if cfg.VectorStore.Chroma == nil {
			cfg.VectorStore.Chroma = &ChromaConfig{}
		}
		if cfg.VectorStore.Chroma.URL == "" {
			cfg.VectorStore.Chroma.URL = "http://localhost:8000"
		}
	}
	if cfg.AI.TokenEnv == "" {
		cfg.AI.TokenEnv = "DOCQUERY_API_TOKEN"
	}
}
