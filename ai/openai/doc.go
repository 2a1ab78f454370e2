// Package openai implements the ai gateways against OpenAI-compatible APIs.
//
// It works with any service that speaks the OpenAI wire protocol, including
// local Ollama, LocalAI, and vLLM servers as well as api.openai.com. The
// Provider type aggregates an Embedder and a Generator built from a shared
// ai.Config.
package openai
