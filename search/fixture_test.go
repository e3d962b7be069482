package search

import (
	"context"
	"sync"
	"testing"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
	"github.com/Nikkoola22/ATLAS/storage/memory"
	"github.com/stretchr/testify/require"
)

func fixtureCorpus(t *testing.T) *core.Corpus {
	t.Helper()
	sections := []core.Section{
		{ID: "temps_ch1_definition", Title: "Définition du temps de travail", Source: core.SourceTemps, Chapter: 1, Keywords: []string{"temps de travail", "1607h"}},
		{ID: "temps_ch2_conges_annuels", Title: "Congés annuels", Source: core.SourceTemps, Chapter: 2, Keywords: []string{"congés annuels", "25 jours"}},
		{ID: "temps_ch2_rtt", Title: "RTT", Source: core.SourceTemps, Chapter: 2, Keywords: []string{"rtt"}},
		{ID: "temps_general", Title: "Temps de travail et congés", Source: core.SourceTemps},
		{ID: "formation_cpf", Title: "Compte personnel de formation", Source: core.SourceFormation, Keywords: []string{"cpf"}},
		{ID: "formation_vae", Title: "VAE", Source: core.SourceFormation, Keywords: []string{"vae"}},
		{ID: "teletravail_quotite", Title: "Quotité de télétravail", Source: core.SourceTeletravail, Keywords: []string{"jours fixes"}},
	}
	chapters := []core.Chapter{
		{ID: 1, Title: "Le temps de travail", Source: core.SourceTemps, Keywords: []string{"temps de travail", "horaires"},
			Articles: []core.Article{{Title: "Définition du temps de travail", Page: 3, Keywords: []string{"1607h"}}}},
		{ID: 2, Title: "Les congés", Source: core.SourceTemps, Keywords: []string{"conges", "vacances"},
			Articles: []core.Article{{Title: "Congés annuels", Page: 7, Keywords: []string{"conges annuels", "25 jours"}}}},
		{ID: 5, Title: "Le règlement formation", Source: core.SourceFormation, Keywords: []string{"formation", "cpf"},
			Articles: []core.Article{{Title: "Bilan de compétences", Page: 12, Keywords: []string{"bilan competences"}}}},
		{ID: 6, Title: "Le protocole télétravail", Source: core.SourceTeletravail, Keywords: []string{"teletravail"},
			Articles: []core.Article{{Title: "Quotité", Page: 2, Keywords: []string{"jours fixes"}}}},
	}
	c, err := core.NewCorpus(sections, chapters, map[core.Source][]int{core.SourceTemps: {1, 2}})
	require.NoError(t, err)
	return c
}

func fixtureDocuments() []*core.Document {
	return []*core.Document{
		{Source: core.SourceTemps, Chapter: 1, Title: "Chapitre 1", Body: "Corps chapitre 1"},
		{Source: core.SourceTemps, Chapter: 2, Title: "Chapitre 2", Body: "Corps chapitre 2"},
		{Source: core.SourceFormation, Title: "Formation", Body: "Corps formation"},
		{Source: core.SourceTeletravail, Title: "Télétravail", Body: "Corps teletravail"},
	}
}

func fixtureStore(t *testing.T, docs ...*core.Document) storage.DocumentRepository {
	t.Helper()
	store, err := memory.NewDocumentStore(docs...)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func fixtureSynonyms() *SynonymTable {
	return NewSynonymTable([]core.Synonym{
		{Key: "conge", Alternates: []string{"congés", "vacances"}},
		{Key: "teletravail", Alternates: []string{"télétravail", "domicile"}},
	})
}

// failingStore reports a backend failure on every lookup.
type failingStore struct {
	err error
}

func (f failingStore) Body(context.Context, core.Source, int) (string, bool, error) {
	return "", false, f.err
}

// recordingMonitor records every hook call.
type recordingMonitor struct {
	mu      sync.Mutex
	events  []string
	located []string
	content string
	result  *core.SearchResult
}

func (m *recordingMonitor) Start(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "start")
}

func (m *recordingMonitor) AfterLocate(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "locate")
	m.located = ids
}

func (m *recordingMonitor) AfterLoad(_ []string, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "load")
	m.content = content
}

func (m *recordingMonitor) Finish(result *core.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "finish")
	m.result = result
}
