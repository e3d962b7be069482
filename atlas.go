// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package atlas wires the corpus, the document store, the completion service
// and both retrieval strategies behind a single Engine.
package atlas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/ai/openai"
	"github.com/Nikkoola22/ATLAS/batch"
	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/corpus"
	"github.com/Nikkoola22/ATLAS/search"
	"github.com/Nikkoola22/ATLAS/storage"
	"github.com/Nikkoola22/ATLAS/storage/badger"
	"github.com/Nikkoola22/ATLAS/storage/memory"
)

var (
	// ErrCompleterUnavailable is returned by completion-backed operations
	// when the engine was built without an API key or provider.
	ErrCompleterUnavailable = errors.New("completion service not configured")

	// ErrUnknownStrategy is returned for a strategy name other than
	// "two-stage" or "scorer".
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy names accepted by Retriever.
const (
	StrategyTwoStage = "two-stage"
	StrategyScorer   = "scorer"
)

type Engine struct {
	bundle   *corpus.Bundle
	store    storage.DocumentRepository
	backend  *badger.Backend
	provider ai.AIProvider
	scorer   *search.Scorer
	twoStage *search.TwoStage
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig   *ai.Config
	provider   ai.AIProvider
	bundle     *corpus.Bundle
	storePath  string
	searchOpts []search.Option
	logger     *slog.Logger
}

// WithAIConfig sets the completion service configuration. The provider is
// only created when the config carries an API key.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses provider instead of building one from the AI config.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithBundle uses an already loaded corpus instead of the embedded one.
func WithBundle(bundle *corpus.Bundle) EngineOption {
	return func(o *engineOptions) {
		o.bundle = bundle
	}
}

// WithBadgerStore reads bodies from a badger database at path instead of
// memory. An empty database is seeded from the corpus.
func WithBadgerStore(path string) EngineOption {
	return func(o *engineOptions) {
		o.storePath = path
	}
}

// WithSearchOptions passes options to both strategies.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	searchOpts := append([]search.Option{search.WithLogger(options.logger)}, options.searchOpts...)

	bundle := options.bundle
	if bundle == nil {
		var err error
		bundle, err = corpus.Load()
		if err != nil {
			return nil, err
		}
	}

	e := &Engine{
		bundle:   bundle,
		provider: options.provider,
		logger:   options.logger,
	}

	if err := e.openStore(options.storePath); err != nil {
		return nil, err
	}

	if e.provider == nil && options.aiConfig != nil && options.aiConfig.APIKey != "" {
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.provider = provider
	}

	scorer, err := search.NewScorer(bundle.Corpus, search.NewSynonymTable(bundle.Synonyms), e.store, searchOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.scorer = scorer

	if e.provider != nil {
		twoStage, err := search.NewTwoStage(bundle.Corpus, e.store, e.provider.Completer(), searchOpts...)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.twoStage = twoStage
	}
	return e, nil
}

func (e *Engine) openStore(path string) error {
	if path == "" {
		store, err := memory.NewDocumentStore(e.bundle.Documents...)
		if err != nil {
			return err
		}
		e.store = store
		return nil
	}

	if !badger.Exists(path) || !e.seeded(path) {
		if err := e.seed(path); err != nil {
			return err
		}
	}

	backend, err := badger.OpenReadOnlyBackend(path)
	if err != nil {
		return err
	}
	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return err
	}
	e.backend = backend
	e.store = repo
	return nil
}

// seeded reports whether the database at path already holds documents.
func (e *Engine) seeded(path string) bool {
	backend, err := badger.OpenReadOnlyBackend(path)
	if err != nil {
		e.logger.Warn("cannot open document store read-only", "path", path, "err", err)
		return false
	}
	defer backend.Close()
	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return false
	}
	docs, err := repo.ListDocuments(context.Background())
	return err == nil && len(docs) > 0
}

// seed writes the corpus documents into the database at path. Queries only
// ever see the store through a read-only handle opened afterwards.
func (e *Engine) seed(path string) error {
	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return err
	}
	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return err
	}
	e.logger.Info("seeding empty document store", "path", path, "documents", len(e.bundle.Documents))
	if err := repo.PutDocuments(context.Background(), e.bundle.Documents...); err != nil {
		backend.Close()
		return err
	}
	return backend.Close()
}

// Close releases the provider and the document store.
func (e *Engine) Close() error {
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Error("error closing document store", "err", err)
			return err
		}
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (e *Engine) Corpus() *core.Corpus {
	return e.bundle.Corpus
}

func (e *Engine) Store() storage.DocumentRepository {
	return e.store
}

// Completer returns the completion service, or nil when none is configured.
func (e *Engine) Completer() ai.Completer {
	if e.provider == nil {
		return nil
	}
	return e.provider.Completer()
}

// ScoreAndRetrieveSingleChapter runs the single-pass strategy.
func (e *Engine) ScoreAndRetrieveSingleChapter(question string) string {
	return e.scorer.ScoreAndRetrieveSingleChapter(context.Background(), question)
}

// Rank returns the single-pass chapter ranking.
func (e *Engine) Rank(question string) []search.ChapterScore {
	return e.scorer.Rank(question)
}

// Index returns the section index the locator sends upstream.
func (e *Engine) Index() string {
	return search.BuildIndex(e.bundle.Corpus)
}

// LocateSections runs the locating stage only. Without a completion
// service it returns an empty list.
func (e *Engine) LocateSections(ctx context.Context, question string) []string {
	if e.twoStage == nil {
		e.logger.Error("cannot locate sections", "err", ErrCompleterUnavailable)
		return []string{}
	}
	return e.twoStage.Locator().Locate(ctx, question)
}

// UnifiedSearch runs the two-stage strategy.
func (e *Engine) UnifiedSearch(ctx context.Context, question string, history []core.Message) (*core.SearchResult, error) {
	if e.twoStage == nil {
		return nil, ErrCompleterUnavailable
	}
	return e.twoStage.UnifiedSearch(ctx, question, history)
}

// SearchInternalDocs returns only the answer text of UnifiedSearch.
func (e *Engine) SearchInternalDocs(ctx context.Context, question string, history []core.Message) (string, error) {
	result, err := e.UnifiedSearch(ctx, question, history)
	if err != nil {
		return "", err
	}
	return search.AnswerText(result), nil
}

// SearchInternalDocsWithNumber returns the answer of UnifiedSearch with
// the first number found in it.
func (e *Engine) SearchInternalDocsWithNumber(ctx context.Context, question string, history []core.Message) (*core.NumberedResult, error) {
	result, err := e.UnifiedSearch(ctx, question, history)
	if err != nil {
		return nil, err
	}
	return search.Numbered(result), nil
}

// QueryWithContext answers from caller-supplied documentation.
//
// Deprecated: use UnifiedSearch.
func (e *Engine) QueryWithContext(ctx context.Context, question, contextText string, history []core.Message, onlyNumber bool) (*core.NumberedResult, error) {
	if e.twoStage == nil {
		return nil, ErrCompleterUnavailable
	}
	return e.twoStage.QueryWithContext(ctx, question, contextText, history, onlyNumber)
}

// Retriever returns the strategy registered under name.
func (e *Engine) Retriever(name string) (search.Retriever, error) {
	switch name {
	case StrategyScorer:
		return e.scorer, nil
	case StrategyTwoStage:
		if e.twoStage == nil {
			return nil, ErrCompleterUnavailable
		}
		return e.twoStage, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// NewBatchRunner creates a batch runner over the named strategy.
func (e *Engine) NewBatchRunner(strategy string, opts ...batch.Option) (*batch.Runner, error) {
	retriever, err := e.Retriever(strategy)
	if err != nil {
		return nil, err
	}
	return batch.NewRunner(retriever, append([]batch.Option{batch.WithLogger(e.logger)}, opts...)...)
}
