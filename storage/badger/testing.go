package badger

import "github.com/Nikkoola22/ATLAS/storage"

// NewMemoryRepository opens an in-memory backend and a document repository on it.
// The caller closes both.
func NewMemoryRepository() (storage.DocumentRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
