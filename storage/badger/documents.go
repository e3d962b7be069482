package badger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
	"github.com/dgraph-io/badger/v4"
)

var errClosed = storage.ErrStorageClosed

// DocumentRepository stores document bodies in badger.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a repository on top of an open backend.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	if backend == nil {
		return nil, errors.New("badger backend required")
	}
	return &DocumentRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend is closed by its owner.
func (r *DocumentRepository) Close() error {
	return nil
}

func (r *DocumentRepository) Body(ctx context.Context, source core.Source, chapter int) (string, bool, error) {
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = readDocument(tx, makeDocumentKey(source, chapter))
		return err
	}, false)
	if err != nil {
		return "", false, err
	}
	if doc == nil || doc.Body == "" {
		return "", false, nil
	}
	return doc.Body, true, nil
}

func (r *DocumentRepository) PutDocuments(ctx context.Context, docs ...*core.Document) error {
	for _, doc := range docs {
		if err := storage.ValidateDocument(doc); err != nil {
			return err
		}
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if err := tx.Set(makeDocumentKey(doc.Source, doc.Chapter), storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

func (r *DocumentRepository) GetDocument(ctx context.Context, source core.Source, chapter int) (*core.Document, error) {
	var doc *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = readDocument(tx, makeDocumentKey(source, chapter))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, core.DocumentTuple(source, chapter))
	}
	return doc, nil
}

func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.Document, error) {
	var docs []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				doc, err := storage.UnmarshalDocument(val)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Keys are hashed, so restore a stable reading order.
	slices.SortFunc(docs, func(a, b *core.Document) int {
		return cmp.Or(
			cmp.Compare(slices.Index(core.Sources, a.Source), slices.Index(core.Sources, b.Source)),
			cmp.Compare(a.Chapter, b.Chapter),
		)
	})
	return docs, nil
}

func readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	return doc, err
}
