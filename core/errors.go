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

import "errors"

// Domain validation errors
var (
	// ErrEmptyDocumentName indicates a document name is empty.
	ErrEmptyDocumentName = errors.New("document name cannot be empty")

	// ErrInvalidDocumentName indicates a document name contains path separators.
	ErrInvalidDocumentName = errors.New("document name cannot contain path separators")

	// ErrInvalidChunk indicates a ChunkRecord failed validation.
	ErrInvalidChunk = errors.New("invalid chunk record")

	// ErrInvalidFormat indicates an unknown Format value.
	ErrInvalidFormat = errors.New("invalid document format")
)
