package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
)

// TwoStage locates the relevant sections from the index, loads only their
// bodies, then asks the completion service to answer from that text alone.
type TwoStage struct {
	locator   *Locator
	loader    *Loader
	completer ai.Completer
	monitor   SearchMonitor
	logger    *slog.Logger
}

// NewTwoStage creates the two-stage strategy.
func NewTwoStage(corpus *core.Corpus, store storage.DocumentStore, completer ai.Completer, opts ...Option) (*TwoStage, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	locator, err := NewLocator(corpus, completer, opts...)
	if err != nil {
		return nil, err
	}
	loader, err := NewLoader(corpus, store, opts...)
	if err != nil {
		return nil, err
	}
	return &TwoStage{
		locator:   locator,
		loader:    loader,
		completer: completer,
		monitor:   o.monitor,
		logger:    o.logger.With("component", "two-stage"),
	}, nil
}

// Locator returns the locating stage.
func (t *TwoStage) Locator() *Locator {
	return t.locator
}

// Loader returns the loading stage.
func (t *TwoStage) Loader() *Loader {
	return t.loader
}

// Retrieve implements Retriever.
func (t *TwoStage) Retrieve(ctx context.Context, question string, history []core.Message) (*core.SearchResult, error) {
	return t.UnifiedSearch(ctx, question, history)
}

// UnifiedSearch runs locate, load and answer for question.
// History is checked before any upstream call. Past that, only loading and
// answering can fail.
func (t *TwoStage) UnifiedSearch(ctx context.Context, question string, history []core.Message) (*core.SearchResult, error) {
	if err := validateHistory(history); err != nil {
		return nil, err
	}
	logger := t.logger.With("query", uuid.NewString())
	t.monitor.Start(question)

	ids := t.locator.Locate(ctx, question)
	t.monitor.AfterLocate(ids)
	logger.Debug("sections located", "ids", ids)
	if len(ids) == 0 {
		return t.finish(&core.SearchResult{
			Answer:             NotFoundAnswer,
			SectionIDs:         []string{},
			UsedReducedContext: true,
		}), nil
	}

	content, err := t.loader.Load(ctx, ids)
	if err != nil {
		logger.Error("error loading sections", "ids", ids, "err", err)
		t.monitor.Finish(nil)
		return nil, err
	}
	t.monitor.AfterLoad(ids, content)
	if content == "" {
		logger.Debug("located sections have no content", "ids", ids)
		return t.finish(&core.SearchResult{
			Answer:             NotFoundAnswer,
			SectionIDs:         ids,
			UsedReducedContext: true,
		}), nil
	}

	answer, err := t.Answer(ctx, question, content, history)
	if err != nil {
		logger.Error("error answering", "err", err)
		t.monitor.Finish(nil)
		return nil, err
	}
	logger.Debug("answered", "ids", ids, "content_bytes", len(content))
	return t.finish(&core.SearchResult{
		Answer:             answer,
		SectionIDs:         ids,
		UsedReducedContext: true,
	}), nil
}

// Answer asks the completion service to answer question from content only.
func (t *TwoStage) Answer(ctx context.Context, question, content string, history []core.Message) (string, error) {
	messages, err := answerMessages(question, content, history)
	if err != nil {
		return "", err
	}
	reply, err := t.completer.Complete(ctx, messages, ai.WithWebSearchDisabled())
	if err != nil {
		return "", fmt.Errorf("answer: %w", err)
	}
	return reply, nil
}

// QueryWithContext answers question from caller-supplied documentation,
// skipping the locate and load stages. The number is only extracted when
// onlyNumber is set.
//
// Deprecated: use UnifiedSearch, which sends far less text upstream.
func (t *TwoStage) QueryWithContext(ctx context.Context, question, contextText string, history []core.Message, onlyNumber bool) (*core.NumberedResult, error) {
	reply, err := t.Answer(ctx, question, contextText, history)
	if err != nil {
		return nil, err
	}
	result := &core.NumberedResult{Text: reply}
	if onlyNumber {
		result.Number = ExtractNumber(reply)
	}
	return result, nil
}

func (t *TwoStage) finish(result *core.SearchResult) *core.SearchResult {
	t.monitor.Finish(result)
	return result
}

func validateHistory(history []core.Message) error {
	for _, msg := range history {
		if err := core.ValidateMessage(msg); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	return nil
}

func answerMessages(question, content string, history []core.Message) ([]core.Message, error) {
	if err := validateHistory(history); err != nil {
		return nil, err
	}
	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: BuildStrictSystemPrompt(content)})
	messages = append(messages, history...)
	return append(messages, core.Message{Role: core.RoleUser, Content: question}), nil
}
