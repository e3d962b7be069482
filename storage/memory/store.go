// Package memory provides an immutable in-process storage.DocumentRepository.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
)

type key struct {
	source  core.Source
	chapter int
}

// DocumentStore holds document bodies in a map keyed by (source, chapter).
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[key]core.Document
	closed bool
}

var _ storage.DocumentRepository = (*DocumentStore)(nil)

// NewDocumentStore builds a store holding docs.
//
// Returns storage.DocumentRepository interface to enforce abstraction.
func NewDocumentStore(docs ...*core.Document) (storage.DocumentRepository, error) {
	return newDocumentStore(docs...)
}

func newDocumentStore(docs ...*core.Document) (*DocumentStore, error) {
	s := &DocumentStore{docs: make(map[key]core.Document, len(docs))}
	if err := s.PutDocuments(context.Background(), docs...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DocumentStore) Body(_ context.Context, source core.Source, chapter int) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, storage.ErrStorageClosed
	}
	doc, ok := s.docs[key{source, chapter}]
	if !ok || doc.Body == "" {
		return "", false, nil
	}
	return doc.Body, true, nil
}

func (s *DocumentStore) PutDocuments(_ context.Context, docs ...*core.Document) error {
	for _, doc := range docs {
		if err := storage.ValidateDocument(doc); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	for _, doc := range docs {
		s.docs[key{doc.Source, doc.Chapter}] = *doc
	}
	return nil
}

func (s *DocumentStore) GetDocument(_ context.Context, source core.Source, chapter int) (*core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	doc, ok := s.docs[key{source, chapter}]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, core.DocumentTuple(source, chapter))
	}
	return &doc, nil
}

func (s *DocumentStore) ListDocuments(_ context.Context) ([]*core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	out := make([]*core.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, &doc)
	}
	slices.SortFunc(out, compareDocuments)
	return out, nil
}

func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func compareDocuments(a, b *core.Document) int {
	return cmp.Or(
		cmp.Compare(sourceRank(a.Source), sourceRank(b.Source)),
		cmp.Compare(a.Chapter, b.Chapter),
	)
}

func sourceRank(src core.Source) int {
	i := slices.Index(core.Sources, src)
	if i < 0 {
		return len(core.Sources)
	}
	return i
}
