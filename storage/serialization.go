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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/docquery/core"
)

// storedDocumentMUS is the MUS serializer for core.StoredDocument.
// Field order is part of the on-disk format and must not change.
type storedDocumentMUS struct{}

// StoredDocumentMUS serializes StoredDocument values in MUS format.
var StoredDocumentMUS = storedDocumentMUS{}

func (storedDocumentMUS) Size(doc core.StoredDocument) int {
	size := ord.String.Size(doc.Name)
	size += varint.Int.Size(int(doc.Format))
	size += ord.String.Size(string(doc.Content))
	size += varint.Uint64.Size(doc.ContentHash)
	size += varint.Int64.Size(doc.UploadedAt.UnixMicro())
	size += varint.Int64.Size(doc.UpdatedAt.UnixMicro())
	return size
}

func (storedDocumentMUS) Marshal(doc core.StoredDocument, bs []byte) (n int) {
	n = ord.String.Marshal(doc.Name, bs)
	n += varint.Int.Marshal(int(doc.Format), bs[n:])
	n += ord.String.Marshal(string(doc.Content), bs[n:])
	n += varint.Uint64.Marshal(doc.ContentHash, bs[n:])
	n += varint.Int64.Marshal(doc.UploadedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(doc.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (storedDocumentMUS) Unmarshal(bs []byte) (doc core.StoredDocument, n int, err error) {
	var n1 int

	doc.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return doc, n, err
	}

	var format int
	format, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.Format = core.Format(format)

	var content string
	content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.Content = []byte(content)

	doc.ContentHash, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}

	var uploadedAt int64
	uploadedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.UploadedAt = time.UnixMicro(uploadedAt).UTC()

	var updatedAt int64
	updatedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return doc, n, err
	}
	doc.UpdatedAt = time.UnixMicro(updatedAt).UTC()

	return doc, n, nil
}

// MarshalStoredDocument serializes a StoredDocument to bytes.
func MarshalStoredDocument(doc *core.StoredDocument) []byte {
	buf := make([]byte, StoredDocumentMUS.Size(*doc))
	StoredDocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalStoredDocument deserializes a StoredDocument from bytes.
func UnmarshalStoredDocument(data []byte) (*core.StoredDocument, error) {
	doc, _, err := StoredDocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &doc, nil
}
