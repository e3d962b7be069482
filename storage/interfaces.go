package storage

import (
	"context"

	"github.com/Nikkoola22/ATLAS/core"
)

// DocumentStore resolves body text for a source and chapter.
// Implementations must be thread-safe and support concurrent access.
type DocumentStore interface {
	// Body returns the body text stored under (source, chapter).
	// Chapter 0 addresses a source that is not subdivided.
	// A missing body is reported as ok == false, not as an error.
	Body(ctx context.Context, source core.Source, chapter int) (body string, ok bool, err error)
}

// DocumentRepository is a DocumentStore that can be seeded and listed.
type DocumentRepository interface {
	DocumentStore

	// PutDocuments stores documents, replacing any existing body under the same
	// (source, chapter) tuple.
	PutDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument returns the document stored under (source, chapter).
	// Returns ErrNotFound if it doesn't exist.
	GetDocument(ctx context.Context, source core.Source, chapter int) (*core.Document, error)

	// ListDocuments returns every stored document ordered by source then chapter.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// Close releases resources held by the repository.
	Close() error
}
