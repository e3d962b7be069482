package memory

import (
	"context"
	"testing"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocs() []*core.Document {
	return []*core.Document{
		{Source: core.SourceTeletravail, Title: "Télétravail", Body: "Deux jours par semaine."},
		{Source: core.SourceTemps, Chapter: 2, Title: "Congés", Body: "25 jours de congés annuels."},
		{Source: core.SourceTemps, Chapter: 1, Title: "Temps de travail", Body: "1607 heures."},
		{Source: core.SourceFormation, Title: "Formation", Body: ""},
	}
}

func TestDocumentStore_Body(t *testing.T) {
	store, err := NewDocumentStore(testDocs()...)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name    string
		source  core.Source
		chapter int
		want    string
		wantOK  bool
	}{
		{name: "temps chapter", source: core.SourceTemps, chapter: 2, want: "25 jours de congés annuels.", wantOK: true},
		{name: "unsubdivided source", source: core.SourceTeletravail, want: "Deux jours par semaine.", wantOK: true},
		{name: "missing chapter", source: core.SourceTemps, chapter: 4},
		{name: "empty body is absent", source: core.SourceFormation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok, err := store.Body(ctx, tt.source, tt.chapter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestDocumentStore_GetAndList(t *testing.T) {
	store, err := NewDocumentStore(testDocs()...)
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := store.GetDocument(ctx, core.SourceTemps, 1)
	require.NoError(t, err)
	assert.Equal(t, "Temps de travail", doc.Title)

	_, err = store.GetDocument(ctx, core.SourceTemps, 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, "(temps,1)", docs[0].Tuple())
	assert.Equal(t, "(temps,2)", docs[1].Tuple())
	assert.Equal(t, "(formation,0)", docs[2].Tuple())
	assert.Equal(t, "(teletravail,0)", docs[3].Tuple())
}

func TestDocumentStore_PutReplaces(t *testing.T) {
	store, err := NewDocumentStore(testDocs()...)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.PutDocuments(ctx, &core.Document{Source: core.SourceFormation, Title: "Formation", Body: "CPF"}))
	body, ok, err := store.Body(ctx, core.SourceFormation, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "CPF", body)

	err = store.PutDocuments(ctx, &core.Document{Source: "paie"})
	assert.ErrorIs(t, err, storage.ErrInvalidDocument)
}

func TestDocumentStore_Closed(t *testing.T) {
	store, err := NewDocumentStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.Body(context.Background(), core.SourceTemps, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
