package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
)

// blockSeparator joins loaded body blocks.
const blockSeparator = "\n\n---\n\n"

// Loader resolves section ids to body text.
type Loader struct {
	corpus *core.Corpus
	store  storage.DocumentStore
	logger *slog.Logger
}

// NewLoader creates a loader reading bodies from store.
func NewLoader(corpus *core.Corpus, store storage.DocumentStore, opts ...Option) (*Loader, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Loader{
		corpus: corpus,
		store:  store,
		logger: o.logger.With("component", "loader"),
	}, nil
}

// Load returns one "=== TITLE ===" block per distinct body, in id order.
// Unknown ids and missing bodies are skipped; "" means nothing was found.
func (l *Loader) Load(ctx context.Context, ids []string) (string, error) {
	var blocks []string
	loaded := make(map[string]bool)
	for _, id := range ids {
		section, ok := l.corpus.Section(id)
		if !ok {
			continue
		}
		key := section.ContentKey()
		if loaded[key] {
			continue
		}
		loaded[key] = true

		body, err := l.body(ctx, section)
		if err != nil {
			return "", fmt.Errorf("load section %s: %w", id, err)
		}
		if body == "" {
			l.logger.Warn("no body for section", "section", id, "key", key)
			continue
		}
		title := section.Title
		if title == "" {
			title = id
		}
		blocks = append(blocks, "=== "+strings.ToUpper(title)+" ===\n"+body)
	}
	return strings.Join(blocks, blockSeparator), nil
}

func (l *Loader) body(ctx context.Context, section core.Section) (string, error) {
	switch {
	case section.Source == core.SourceTemps && section.HasChapter():
		return l.lookup(ctx, core.SourceTemps, section.Chapter)
	case section.Source == core.SourceTemps:
		var parts []string
		for _, ch := range l.corpus.SourceChapters(core.SourceTemps) {
			body, err := l.lookup(ctx, core.SourceTemps, ch)
			if err != nil {
				return "", err
			}
			if body != "" {
				parts = append(parts, body)
			}
		}
		return strings.Join(parts, blockSeparator), nil
	default:
		return l.lookup(ctx, section.Source, 0)
	}
}

func (l *Loader) lookup(ctx context.Context, src core.Source, chapter int) (string, error) {
	body, ok, err := l.store.Body(ctx, src, chapter)
	if err != nil || !ok {
		return "", err
	}
	return body, nil
}
