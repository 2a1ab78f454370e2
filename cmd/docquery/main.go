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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/docquery"
	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/extract"
	"github.com/poiesic/docquery/vectorstore"
	"github.com/poiesic/docquery/vectorstore/chroma"
	"github.com/poiesic/docquery/vectorstore/memory"
)

func main() {
	// Environment variables may carry API tokens and the PDF license key
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	app := &cli.App{
		Name:  "docquery",
		Usage: "Question answering over your documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "docquery.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Upload and index documents (txt, md, pdf, html)",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "replace",
						Aliases: []string{"r"},
						Usage:   "Replace documents that are already indexed",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Ask a question over the indexed documents",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Matches retrieved per document",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List indexed documents",
				Action: listCommand,
			},
			{
				Name:      "delete",
				Usage:     "Remove documents and their index entries",
				ArgsUsage: "NAME [NAME...]",
				Action:    deleteCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openPipeline builds the pipeline from the configuration file and flags.
func openPipeline(c *cli.Context) (*docquery.Pipeline, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := extract.SetPDFLicenseKey(os.Getenv("UNIDOC_LICENSE_KEY")); err != nil {
		slog.Warn("could not set PDF license key, PDF ingestion will fail", "err", err)
	}

	var vectors vectorstore.Store
	switch cfg.VectorStore.Type {
	case "chroma":
		vectors, err = chroma.NewStore(chroma.Config{
			URL:              cfg.VectorStore.Chroma.URL,
			CollectionPrefix: cfg.VectorStore.Chroma.CollectionPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to chroma: %w", err)
		}
	case "memory":
		vectors = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}

	var aiOpts []ai.ConfigOption
	if cfg.AI.EmbeddingHost != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingHost(cfg.AI.EmbeddingHost))
	}
	if cfg.AI.GenerationHost != "" {
		aiOpts = append(aiOpts, ai.WithGenerationHost(cfg.AI.GenerationHost))
	}
	if cfg.AI.EmbeddingModel != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(cfg.AI.EmbeddingModel))
	}
	if cfg.AI.GenerationModel != "" {
		aiOpts = append(aiOpts, ai.WithGenerationModel(cfg.AI.GenerationModel))
	}
	if cfg.AI.Dimension > 0 {
		aiOpts = append(aiOpts, ai.WithDimension(cfg.AI.Dimension))
	}
	if token := os.Getenv(cfg.AI.TokenEnv); token != "" {
		aiOpts = append(aiOpts, ai.WithToken(token))
	}

	pipelineOpts := []docquery.PipelineOption{
		docquery.WithAIConfig(ai.NewConfig(aiOpts...)),
	}
	if cfg.Chunker.MaxChunkChars > 0 {
		pipelineOpts = append(pipelineOpts, docquery.WithMaxChunkChars(cfg.Chunker.MaxChunkChars))
	}
	topK := cfg.Query.TopK
	if c.IsSet("top-k") {
		topK = c.Int("top-k")
	}
	if topK > 0 {
		pipelineOpts = append(pipelineOpts, docquery.WithTopK(topK))
	}
	if cfg.Query.ContextBudget > 0 {
		pipelineOpts = append(pipelineOpts, docquery.WithContextBudget(cfg.Query.ContextBudget))
	}

	pipeline, err := docquery.Open(cfg.DBPath, vectors, pipelineOpts...)
	if err != nil {
		vectors.Close()
		return nil, err
	}
	return pipeline, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	pipeline, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	ctx := context.Background()
	opts := docquery.IngestOptions{Replace: c.Bool("replace")}

	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		name := filepath.Base(path)
		result, err := pipeline.Ingest(ctx, name, data, opts)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", name, err)
		}
		fmt.Printf("%s: %d chunks indexed\n", name, result.ChunkCount)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a question is required")
	}
	question := strings.Join(c.Args().Slice(), " ")

	pipeline, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	result, err := pipeline.Query(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	if len(result.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range result.Sources {
			fmt.Printf("  %s (lines %d-%d)\n", source.Document, source.LineStart, source.LineEnd)
		}
	}
	return nil
}

func listCommand(c *cli.Context) error {
	pipeline, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	infos, err := pipeline.ListDocuments(context.Background())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no documents indexed")
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s\t%s\t%s\n", info.Name, info.Format, info.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one document name is required")
	}

	pipeline, err := openPipeline(c)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	ctx := context.Background()
	for _, name := range c.Args().Slice() {
		if err := pipeline.DeleteDocument(ctx, name); err != nil {
			return fmt.Errorf("deleting %s: %w", name, err)
		}
		fmt.Printf("%s deleted\n", name)
	}
	return nil
}
