package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/storage"
)

// Keyword tiers, first match wins.
const (
	tierExact     = 10
	tierQuestion  = 5
	tierOverlap   = 2
	boostFactor   = 3
	chapterWeight = 3
	articleWeight = 2
)

// boosted keywords count three times as much as the others.
// Entries are in normalized form, as keywords are normalized before lookup.
var boosted = map[string]bool{
	"formation":         true,
	"cpf":               true,
	"vae":               true,
	"bilan competences": true,
	"teletravail":       true,
	"travail distance":  true,
	"domicile":          true,
	"forfait annuel":    true,
	"15 jours":          true,
	"4 jours fixes":     true,
}

// ChapterScore is one entry of a ranking. TitleMatch is set when the chapter's
// article titles contain the whole normalized question; it only breaks ties.
type ChapterScore struct {
	ChapterID  int
	Title      string
	Source     core.Source
	Score      int
	TitleMatch bool
}

// Scorer is the single-pass strategy: it scores the legacy chapter index
// against the question and returns the body of the best chapter.
type Scorer struct {
	corpus   *core.Corpus
	synonyms *SynonymTable
	store    storage.DocumentStore
	logger   *slog.Logger
}

// NewScorer creates a single-pass scorer. A nil synonym table disables expansion.
func NewScorer(corpus *core.Corpus, synonyms *SynonymTable, store storage.DocumentStore, opts ...Option) (*Scorer, error) {
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
	return &Scorer{
		corpus:   corpus,
		synonyms: synonyms,
		store:    store,
		logger:   o.logger.With("component", "scorer"),
	}, nil
}

// Rank scores every chapter and returns those with a positive score,
// best first.
func (s *Scorer) Rank(question string) []ChapterScore {
	q := Normalize(question)
	terms, termSet := s.expandQuestion(q)

	var ranked []ChapterScore
	for _, ch := range s.corpus.Chapters() {
		score := 0
		for _, kw := range ch.Keywords {
			score += keywordScore(kw, q, terms, termSet, chapterWeight)
		}
		titles := make([]string, 0, len(ch.Articles))
		for _, a := range ch.Articles {
			titles = append(titles, a.Title)
			for _, kw := range a.Keywords {
				score += keywordScore(kw, q, terms, termSet, articleWeight)
			}
		}
		if score <= 0 {
			continue
		}
		// Suspect: the whole question rarely appears in a title, so this
		// almost never fires for real questions.
		titleMatch := q != "" && strings.Contains(strings.ToLower(strings.Join(titles, " ")), q)
		ranked = append(ranked, ChapterScore{
			ChapterID:  ch.ID,
			Title:      ch.Title,
			Source:     ch.Source,
			Score:      score,
			TitleMatch: titleMatch,
		})
	}

	slices.SortStableFunc(ranked, func(a, b ChapterScore) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		switch {
		case a.TitleMatch && !b.TitleMatch:
			return -1
		case b.TitleMatch && !a.TitleMatch:
			return 1
		}
		return 0
	})
	return ranked
}

// ScoreAndRetrieveSingleChapter returns "Source: <title>\nContenu: <body>" for the
// best chapter, or a fallback text. It never fails; store errors are logged.
func (s *Scorer) ScoreAndRetrieveSingleChapter(ctx context.Context, question string) string {
	answer, _, err := s.retrieve(ctx, question)
	if err != nil {
		s.logger.Error("failed to load chapter body", "err", err)
		return NoContentAnswer
	}
	return answer
}

// Retrieve implements Retriever. History is ignored.
func (s *Scorer) Retrieve(ctx context.Context, question string, _ []core.Message) (*core.SearchResult, error) {
	answer, ids, err := s.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	return &core.SearchResult{Answer: answer, SectionIDs: ids}, nil
}

func (s *Scorer) retrieve(ctx context.Context, question string) (string, []string, error) {
	ranked := s.Rank(question)
	if len(ranked) == 0 {
		s.logger.Debug("no chapter scored", "question", question)
		return s.overview(), []string{}, nil
	}

	top := ranked[0]
	ch, _ := s.corpus.Chapter(top.ChapterID)
	ids := s.corpus.SectionIDsForChapter(ch)
	if ids == nil {
		ids = []string{}
	}
	s.logger.Debug("chapter selected", "chapter", top.ChapterID, "score", top.Score)

	chapter := top.ChapterID
	if top.Source == core.SourceFormation || top.Source == core.SourceTeletravail {
		chapter = 0
	}
	src := top.Source
	if !src.Valid() {
		src = core.SourceTemps
	}
	body, ok, err := s.store.Body(ctx, src, chapter)
	if err != nil {
		return "", nil, fmt.Errorf("load body of chapter %d: %w", top.ChapterID, err)
	}
	if !ok || body == "" {
		return NoContentAnswer, ids, nil
	}
	return fmt.Sprintf("Source: %s\nContenu: %s", top.Title, body), ids, nil
}

func (s *Scorer) overview() string {
	chapters := s.corpus.Chapters()
	titles := make([]string, len(chapters))
	for i, ch := range chapters {
		titles[i] = ch.Title
	}
	return noChapterPrefix + strings.Join(titles, ", ")
}

func (s *Scorer) expandQuestion(q string) ([]string, map[string]bool) {
	var terms []string
	set := make(map[string]bool)
	for _, word := range strings.Fields(q) {
		for _, t := range s.synonyms.Expand(word) {
			if !set[t] {
				set[t] = true
				terms = append(terms, t)
			}
		}
	}
	return terms, set
}

// keywordScore returns the contribution of one keyword.
func keywordScore(keyword, question string, terms []string, termSet map[string]bool, weight int) int {
	k := Normalize(keyword)
	if k == "" {
		return 0
	}
	boost := 1
	if boosted[k] {
		boost = boostFactor
	}
	if termSet[k] {
		return tierExact * boost * weight
	}
	if strings.Contains(question, k) {
		return tierQuestion * boost * weight
	}
	for _, t := range terms {
		if strings.Contains(k, t) || strings.Contains(t, k) {
			return tierOverlap * boost * weight
		}
	}
	return 0
}
