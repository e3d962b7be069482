package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/ai/mock"
	"github.com/Nikkoola22/ATLAS/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocator(t *testing.T) {
	c := fixtureCorpus(t)

	_, err := NewLocator(nil, mock.NewMockCompleter())
	assert.Equal(t, ErrCorpusRequired, err)

	_, err = NewLocator(c, nil)
	assert.Equal(t, ErrCompleterRequired, err)

	_, err = NewLocator(c, mock.NewMockCompleter(), WithMaxSections(-1))
	assert.ErrorIs(t, err, ErrInvalidMaxSections)
}

func TestBuildIndex(t *testing.T) {
	index := BuildIndex(fixtureCorpus(t))

	assert.True(t, strings.HasPrefix(index,
		"=== SOMMAIRE DES DOCUMENTS INTERNES ===\n\n"+
			"📋 TEMPS DE TRAVAIL (temps):\n"+
			"  - [temps_ch1_definition] Définition du temps de travail\n"+
			"    Mots-clés: temps de travail, 1607h\n"))
	assert.Contains(t, index, "\n\n📚 FORMATION (formation):\n  - [formation_cpf] Compte personnel de formation\n    Mots-clés: cpf\n")
	assert.True(t, strings.HasSuffix(index,
		"🏠 TÉLÉTRAVAIL (teletravail):\n"+
			"  - [teletravail_quotite] Quotité de télétravail\n"+
			"    Mots-clés: jours fixes"))
	assert.Equal(t, 7, strings.Count(index, "  - ["))
	assert.NotContains(t, index, "Corps chapitre")
}

func TestLocatorLocate(t *testing.T) {
	ctx := context.Background()
	c := fixtureCorpus(t)

	t.Run("request shape", func(t *testing.T) {
		completer := mock.NewMockCompleter().WithReply("[temps_ch2_conges_annuels]")
		l, err := NewLocator(c, completer)
		require.NoError(t, err)

		ids := l.Locate(ctx, "Combien de jours de congés ?")
		assert.Equal(t, []string{"temps_ch2_conges_annuels"}, ids)

		call, ok := completer.LastCall()
		require.True(t, ok)
		assert.True(t, call.Options.DisableWebSearch)
		require.Len(t, call.Messages, 2)
		assert.Equal(t, core.RoleSystem, call.Messages[0].Role)
		assert.Contains(t, call.Messages[0].Content, l.Index())
		assert.Contains(t, call.Messages[0].Content, "Maximum 3 sections")
		assert.Equal(t, core.RoleUser, call.Messages[1].Role)
		assert.Equal(t,
			"Question de l'agent: \"Combien de jours de congés ?\"\n\nQuelles sections contiennent cette information ? Réponds avec les IDs.",
			call.Messages[1].Content)
	})

	t.Run("filters dedupes and caps", func(t *testing.T) {
		completer := mock.NewMockCompleter().WithReply(
			"[formation_cpf] puis [formation_cpf], [inconnu], [temps_ch2_rtt] [teletravail_quotite] [temps_ch1_definition]")
		l, err := NewLocator(c, completer)
		require.NoError(t, err)

		assert.Equal(t, []string{"formation_cpf", "temps_ch2_rtt", "teletravail_quotite"}, l.Locate(ctx, "q"))
	})

	t.Run("custom cap", func(t *testing.T) {
		completer := mock.NewMockCompleter().WithReply("[formation_cpf] [formation_vae]")
		l, err := NewLocator(c, completer, WithMaxSections(1))
		require.NoError(t, err)

		assert.Equal(t, []string{"formation_cpf"}, l.Locate(ctx, "q"))
	})

	t.Run("no id in reply", func(t *testing.T) {
		completer := mock.NewMockCompleter().WithReply("[AUCUNE]")
		l, err := NewLocator(c, completer)
		require.NoError(t, err)

		ids := l.Locate(ctx, "q")
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})

	t.Run("completion failure yields empty list", func(t *testing.T) {
		completer := mock.NewMockCompleter().WithCompleteFunc(
			func(context.Context, []core.Message, ai.CompleteOptions) (string, error) {
				return "", errors.New("upstream 500")
			})
		l, err := NewLocator(c, completer)
		require.NoError(t, err)

		ids := l.Locate(ctx, "q")
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
		assert.Equal(t, 1, completer.CallCount())
	})
}

func TestParseSectionIDs(t *testing.T) {
	l, err := NewLocator(fixtureCorpus(t), mock.NewMockCompleter())
	require.NoError(t, err)

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"empty", "", []string{}},
		{"prose only", "La réponse se trouve dans le chapitre 2.", []string{}},
		{"single", "[formation_vae]", []string{"formation_vae"}},
		{"upper case is not a known id", "[FORMATION_VAE]", []string{}},
		{"malformed brackets", "[formation-vae] [formation_vae", []string{}},
		{"order kept", "[temps_ch2_rtt]\n[temps_general]", []string{"temps_ch2_rtt", "temps_general"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.ParseSectionIDs(tt.reply))
		})
	}
}
