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


// Package ai provides abstractions for the AI gateways used by docquery.
//
// This package defines interfaces for text embedding and answer generation.
// The pipeline depends on these abstractions rather than concrete
// implementations, so gateways can be swapped without touching the indexing
// or retrieval logic.
//
// # Interfaces
//
//   - Embedder: converts text into fixed-dimension vector embeddings
//   - Generator: produces a completion for a system instruction + user prompt
//   - Provider: aggregates both gateways for initialization and lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//     (OpenAI, Ollama, LocalAI, vLLM)
//   - ai/mock: deterministic test doubles for unit testing without external
//     services
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; the mock constructors return concrete types so tests can
// inject behavior and make assertions.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "hello world")
package ai
