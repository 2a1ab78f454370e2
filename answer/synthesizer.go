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


package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
)

const (
	// NotFoundAnswer is returned when retrieval produced no matches.
	// No generation call is made in that case.
	NotFoundAnswer = "I could not find anything about that in the indexed documents."

	// DefaultContextBudget caps the total characters of context passed to
	// the generator.
	DefaultContextBudget = 8000

	// DefaultTemperature keeps generation near-deterministic so answers
	// stay grounded in the supplied context.
	DefaultTemperature = 0.1
)

// Synthesizer turns retrieved matches into a grounded natural-language
// answer.
type Synthesizer struct {
	generator     ai.Generator
	contextBudget int
	temperature   float64
	logger        *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithContextBudget caps the context size in characters.
// Default is DefaultContextBudget; values below 1 are ignored.
func WithContextBudget(budget int) Option {
	return func(s *Synthesizer) {
		if budget > 0 {
			s.contextBudget = budget
		}
	}
}

// WithTemperature sets the generation temperature.
// Default is DefaultTemperature.
func WithTemperature(temperature float64) Option {
	return func(s *Synthesizer) {
		if temperature >= 0 {
			s.temperature = temperature
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer(generator ai.Generator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator:     generator,
		contextBudget: DefaultContextBudget,
		temperature:   DefaultTemperature,
		logger:        slog.Default().With("component", "synthesizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Synthesize answers the query from the retrieved matches.
//
// With no matches it short-circuits to NotFoundAnswer with empty provenance
// and makes no generation call. Otherwise it joins the match texts into a
// context block up to the configured budget, prompts the generator to answer
// strictly from that context, and returns the trimmed answer with the full
// match list as provenance in pool order.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, matches []core.Match) (core.Answer, error) {
	if len(matches) == 0 {
		s.logger.Debug("no matches, returning not-found answer")
		return core.Answer{Text: NotFoundAnswer}, nil
	}

	contextBlock := buildContext(matches, s.contextBudget)
	userPrompt := buildUserPrompt(query, contextBlock)

	text, err := s.generator.Generate(ctx, groundingInstruction, userPrompt, s.temperature)
	if err != nil {
		return core.Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	s.logger.Debug("answer synthesized",
		"matches", len(matches), "context_chars", len(contextBlock), "answer_chars", len(text))

	return core.Answer{
		Text:    strings.TrimSpace(text),
		Sources: matches,
	}, nil
}
