package search

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/core"
)

const indexHeader = "=== SOMMAIRE DES DOCUMENTS INTERNES ===\n"

var sourceHeadings = map[core.Source]string{
	core.SourceTemps:       "📋 TEMPS DE TRAVAIL (temps):",
	core.SourceFormation:   "📚 FORMATION (formation):",
	core.SourceTeletravail: "🏠 TÉLÉTRAVAIL (teletravail):",
}

var bracketedID = regexp.MustCompile(`(?i)\[([a-z_0-9]+)\]`)

// Locator asks the completion service which sections hold the answer,
// given only the section index.
type Locator struct {
	corpus      *core.Corpus
	completer   ai.Completer
	logger      *slog.Logger
	maxSections int
	index       string
}

// NewLocator creates a locator. The index text is built once.
func NewLocator(corpus *core.Corpus, completer ai.Completer, opts ...Option) (*Locator, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Locator{
		corpus:      corpus,
		completer:   completer,
		logger:      o.logger.With("component", "locator"),
		maxSections: o.maxSections,
		index:       BuildIndex(corpus),
	}, nil
}

// Index returns the section index sent to the completion service.
func (l *Locator) Index() string {
	return l.index
}

// Locate returns up to the configured number of known section ids, most
// relevant first. Any completion failure yields an empty list.
func (l *Locator) Locate(ctx context.Context, question string) []string {
	messages := []core.Message{
		{Role: core.RoleSystem, Content: BuildLocationSystemPrompt(l.index, l.maxSections)},
		{Role: core.RoleUser, Content: buildLocateQuestion(question)},
	}
	reply, err := l.completer.Complete(ctx, messages, ai.WithWebSearchDisabled())
	if err != nil {
		l.logger.Error("section lookup failed", "err", err)
		return []string{}
	}
	ids := l.ParseSectionIDs(reply)
	l.logger.Debug("sections located", "reply", reply, "ids", ids)
	return ids
}

// ParseSectionIDs extracts bracketed ids from reply, keeping known ids only,
// without duplicates and capped at the configured maximum.
func (l *Locator) ParseSectionIDs(reply string) []string {
	ids := []string{}
	seen := make(map[string]bool)
	for _, m := range bracketedID.FindAllStringSubmatch(reply, -1) {
		id := m[1]
		if seen[id] || !l.corpus.Has(id) {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		if len(ids) == l.maxSections {
			break
		}
	}
	return ids
}

// BuildIndex renders the section index grouped by source.
func BuildIndex(corpus *core.Corpus) string {
	lines := []string{indexHeader}
	for i, src := range core.Sources {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sourceHeadings[src])
		for _, s := range corpus.SectionsBySource(src) {
			lines = append(lines,
				"  - ["+s.ID+"] "+s.Title,
				"    Mots-clés: "+strings.Join(s.Keywords, ", "),
			)
		}
	}
	return strings.Join(lines, "\n")
}
