package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
)

// DocumentStore implements storage.DocumentStore for BadgerDB.
type DocumentStore struct {
	backend *Backend
}

var _ storage.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a new DocumentStore on the given backend.
func NewDocumentStore(backend *Backend) (storage.DocumentStore, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &DocumentStore{backend: backend}, nil
}

// Close releases resources. DocumentStore has no resources of its own;
// the backend is closed separately.
func (s *DocumentStore) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (s *DocumentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// PutDocument stores a document, overwriting any existing document with the
// same name.
func (s *DocumentStore) PutDocument(ctx context.Context, doc *core.StoredDocument) (*core.StoredDocument, error) {
	if err := core.ValidateStoredDocument(doc); err != nil {
		return nil, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(doc.Name)

		// Preserve the original upload time across overwrites
		old, err := readDocument(tx, key)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if old != nil {
			doc.UploadedAt = old.UploadedAt
		} else if doc.UploadedAt.IsZero() {
			doc.UploadedAt = now
		}
		doc.UpdatedAt = now

		if doc.ContentHash == 0 {
			doc.ContentHash = core.HashContent(doc.Content)
		}

		if err := tx.Set(key, storage.MarshalStoredDocument(doc)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument retrieves a document by name.
func (s *DocumentStore) GetDocument(ctx context.Context, name string) (*core.StoredDocument, error) {
	var result *core.StoredDocument
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		doc, err := readDocument(tx, makeDocumentKey(name))
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}
		result = doc
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListDocuments returns metadata for all stored documents, ordered by name.
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error) {
	var infos []*core.DocumentInfo

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.StoredDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalStoredDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			infos = append(infos, doc.Info())
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return infos, nil
}

// DocumentExists reports whether a document with the given name exists.
func (s *DocumentStore) DocumentExists(ctx context.Context, name string) (bool, error) {
	exists := false
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeDocumentKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)

	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteDocument removes a document by name.
func (s *DocumentStore) DeleteDocument(ctx context.Context, name string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(name)

		_, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readDocument reads and deserializes a document from the transaction.
// Returns nil without error if the key doesn't exist.
func readDocument(tx *badger.Txn, key []byte) (*core.StoredDocument, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *core.StoredDocument
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalStoredDocument(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
