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
	"fmt"
	"strings"
)

// ValidateDocumentName checks that a document name is usable as a namespace
// key. Names are original filenames; path separators are rejected so a name
// cannot escape the upload directory or collide across directories.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyDocumentName
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidDocumentName, name)
	}
	return nil
}

// ValidateChunk checks the structural invariants of a chunk record: a
// non-negative ordinal, non-empty text, and a line range consistent with the
// ordinal.
func ValidateChunk(chunk ChunkRecord) error {
	if chunk.Ordinal < 0 {
		return fmt.Errorf("%w: negative ordinal %d", ErrInvalidChunk, chunk.Ordinal)
	}
	if strings.TrimSpace(chunk.Text) == "" {
		return fmt.Errorf("%w: empty text at ordinal %d", ErrInvalidChunk, chunk.Ordinal)
	}
	start, end := LineRange(chunk.Ordinal)
	if chunk.LineStart != start || chunk.LineEnd != end {
		return fmt.Errorf("%w: line range [%d,%d] does not match ordinal %d",
			ErrInvalidChunk, chunk.LineStart, chunk.LineEnd, chunk.Ordinal)
	}
	return nil
}

// ValidateFormat checks that a Format is one of the known values.
func ValidateFormat(format Format) error {
	switch format {
	case FormatText, FormatPDF, FormatHTML:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidFormat, format)
	}
}

// ValidateStoredDocument checks a stored document before persistence.
func ValidateStoredDocument(doc *StoredDocument) error {
	if err := ValidateDocumentName(doc.Name); err != nil {
		return err
	}
	return ValidateFormat(doc.Format)
}
