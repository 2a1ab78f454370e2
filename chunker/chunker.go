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


package chunker

import (
	"strings"
	"unicode"

	"github.com/poiesic/docquery/core"
)

// DefaultMaxChunkChars is the default soft bound on chunk length.
const DefaultMaxChunkChars = 400

// Chunker splits document text into bounded, sentence-aligned chunks.
// The bound is a soft target: a chunk closes only once the next sentence
// would push it past the bound, and a single sentence longer than the bound
// becomes its own oversized chunk.
type Chunker struct {
	maxChunkChars int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxChunkChars sets the soft chunk length bound.
// Values below 1 fall back to DefaultMaxChunkChars.
func WithMaxChunkChars(max int) Option {
	return func(c *Chunker) {
		if max >= 1 {
			c.maxChunkChars = max
		}
	}
}

// New creates a Chunker with the default bound and applies the options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChunkChars: DefaultMaxChunkChars}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into ordered chunk records. Sentences are accumulated
// greedily; when the buffer plus the next sentence would exceed the bound the
// buffer is closed and the sentence starts a new one. Each chunk gets a
// synthetic line range derived from its ordinal. Empty or whitespace-only
// input yields zero chunks.
func (c *Chunker) Chunk(text string) []core.ChunkRecord {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []core.ChunkRecord
	var buffer string

	flush := func() {
		if buffer == "" {
			return
		}
		chunks = append(chunks, core.NewChunkRecord(len(chunks), buffer))
		buffer = ""
	}

	for _, sentence := range sentences {
		if buffer != "" && len(buffer)+len(sentence) > c.maxChunkChars {
			flush()
		}
		if buffer == "" {
			buffer = sentence
		} else {
			buffer += " " + sentence
		}
	}
	flush()

	return chunks
}

// SplitSentences splits text on sentence boundaries. A sentence ends at '.',
// '?', or '!' followed by whitespace or end of input. Sentences are trimmed
// of surrounding whitespace; empty pieces are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	appendSentence := func(end int) {
		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '?', '!':
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				appendSentence(i + 1)
			}
		}
	}
	if start < len(runes) {
		appendSentence(len(runes))
	}

	return sentences
}
