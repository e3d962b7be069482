package search

import (
	"context"
	"testing"

	"github.com/Nikkoola22/ATLAS/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	_, err := NewLoader(nil, fixtureStore(t))
	assert.Equal(t, ErrCorpusRequired, err)

	_, err = NewLoader(fixtureCorpus(t), nil)
	assert.Equal(t, ErrStoreRequired, err)
}

func TestLoaderLoad(t *testing.T) {
	ctx := context.Background()
	c := fixtureCorpus(t)

	newLoader := func(t *testing.T) *Loader {
		l, err := NewLoader(c, fixtureStore(t, fixtureDocuments()...))
		require.NoError(t, err)
		return l
	}

	t.Run("same chapter loaded once", func(t *testing.T) {
		content, err := newLoader(t).Load(ctx, []string{"temps_ch2_conges_annuels", "temps_ch2_rtt"})
		require.NoError(t, err)
		assert.Equal(t, "=== CONGÉS ANNUELS ===\nCorps chapitre 2", content)
	})

	t.Run("same source loaded once", func(t *testing.T) {
		content, err := newLoader(t).Load(ctx, []string{"formation_cpf", "formation_vae", "teletravail_quotite"})
		require.NoError(t, err)
		assert.Equal(t,
			"=== COMPTE PERSONNEL DE FORMATION ===\nCorps formation\n\n---\n\n=== QUOTITÉ DE TÉLÉTRAVAIL ===\nCorps teletravail",
			content)
	})

	t.Run("temps without chapter loads every chapter", func(t *testing.T) {
		content, err := newLoader(t).Load(ctx, []string{"temps_general"})
		require.NoError(t, err)
		assert.Equal(t,
			"=== TEMPS DE TRAVAIL ET CONGÉS ===\nCorps chapitre 1\n\n---\n\nCorps chapitre 2",
			content)
	})

	t.Run("unknown ids and missing bodies", func(t *testing.T) {
		l, err := NewLoader(c, fixtureStore(t, fixtureDocuments()[2:]...))
		require.NoError(t, err)

		content, err := l.Load(ctx, []string{"nope", "temps_ch1_definition"})
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("no ids", func(t *testing.T) {
		content, err := newLoader(t).Load(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := fixtureStore(t, fixtureDocuments()...)
		require.NoError(t, store.Close())
		l, err := NewLoader(c, store)
		require.NoError(t, err)

		_, err = l.Load(ctx, []string{"formation_cpf"})
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	})
}
