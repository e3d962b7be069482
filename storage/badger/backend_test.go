package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0o644))

	_, err := OpenBackend(tmpFile, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestOpenReadOnlyBackend_SeededDirectory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewDocumentRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.PutDocuments(ctx, &core.Document{Source: core.SourceTemps, Chapter: 2, Title: "Congés", Body: "25 jours"}))
	require.NoError(t, backend.Close())

	assert.True(t, Exists(dir))

	ro, err := OpenReadOnlyBackend(dir)
	require.NoError(t, err)
	defer ro.Close()

	repo, err = NewDocumentRepository(ro)
	require.NoError(t, err)
	body, ok, err := repo.Body(ctx, core.SourceTemps, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "25 jours", body)
}

func TestReadOnlyBackendRejectsWrites(t *testing.T) {
	dir := t.TempDir()
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	ro, err := OpenReadOnlyBackend(dir)
	require.NoError(t, err)
	defer ro.Close()

	repo, err := NewDocumentRepository(ro)
	require.NoError(t, err)
	err = repo.PutDocuments(context.Background(), &core.Document{Source: core.SourceFormation, Title: "Formation", Body: "CPF"})
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "missing")))

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NoError(t, backend.Close())
	assert.True(t, Exists(dir))
}
