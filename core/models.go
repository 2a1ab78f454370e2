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


package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// LinesPerChunk is the synthetic line span assigned to each chunk. Line
// ranges are derived from the chunk ordinal alone, never from real source
// line numbers; downstream consumers treat them as stable citation anchors.
const LinesPerChunk = 15

// Format identifies the original format of an ingested document.
type Format int

const (
	// FormatText represents plain text (and Markdown) documents.
	FormatText Format = iota + 1
	// FormatPDF represents PDF documents.
	FormatPDF
	// FormatHTML represents HTML documents.
	FormatHTML
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// ChunkRecord is a contiguous, sentence-aligned slice of a document's text.
// Chunks are created once at ingestion time and never mutated; concatenating
// chunk texts in ordinal order reproduces the document's sentence sequence.
type ChunkRecord struct {
	Ordinal   int // 0-based, contiguous position within the document
	LineStart int // synthetic, Ordinal*LinesPerChunk + 1
	LineEnd   int // synthetic, (Ordinal+1)*LinesPerChunk
	Text      string
}

// NewChunkRecord builds a chunk for the given ordinal with its synthetic
// line range populated.
func NewChunkRecord(ordinal int, text string) ChunkRecord {
	start, end := LineRange(ordinal)
	return ChunkRecord{
		Ordinal:   ordinal,
		LineStart: start,
		LineEnd:   end,
		Text:      text,
	}
}

// LineRange returns the synthetic line range for a chunk ordinal.
func LineRange(ordinal int) (start, end int) {
	return ordinal*LinesPerChunk + 1, (ordinal + 1) * LinesPerChunk
}

// VectorRecordID derives the vector store record id for a chunk. The id is
// deterministic, so re-indexing the same ordinal overwrites rather than
// duplicates.
func VectorRecordID(documentID string, ordinal int) string {
	return fmt.Sprintf("%s-%d", documentID, ordinal)
}

// Match is an ephemeral result of a similarity query against one document
// namespace. Matches are never persisted.
type Match struct {
	Document  string // document identity, equal to the namespace queried
	Text      string // the matched chunk's literal text
	LineStart int
	LineEnd   int
	Rank      int // 1-based similarity rank within the namespace
}

// Answer is the ephemeral result of a query: the generated text plus the
// matches that supplied its context, in pool order.
type Answer struct {
	Text    string
	Sources []Match
}

// StoredDocument is the unit persisted in the document store: the raw
// uploaded bytes plus identifying metadata, keyed by filename.
type StoredDocument struct {
	Name        string
	Format      Format
	Content     []byte
	ContentHash uint64
	UploadedAt  time.Time
	UpdatedAt   time.Time
}

// DocumentInfo is a listing entry for a stored document. Content is omitted.
type DocumentInfo struct {
	Name        string
	Format      Format
	Size        int
	ContentHash uint64
	UploadedAt  time.Time
	UpdatedAt   time.Time
}

// Info returns the listing entry for a stored document.
func (d *StoredDocument) Info() *DocumentInfo {
	return &DocumentInfo{
		Name:        d.Name,
		Format:      d.Format,
		Size:        len(d.Content),
		ContentHash: d.ContentHash,
		UploadedAt:  d.UploadedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// HashContent computes a deterministic 64-bit content hash using BLAKE2b.
// Identical content always produces an identical hash, which lets callers
// detect unchanged re-uploads without comparing bytes.
func HashContent(data []byte) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
