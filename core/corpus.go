package core

import "slices"

// Corpus is the read-only set of sections and legacy chapters.
// It is built once at startup by NewCorpus and never mutated afterwards;
// accessors return copies so callers cannot alter the shared state.
type Corpus struct {
	sections       []Section
	byID           map[string]int
	chapters       []Chapter
	chapterByID    map[int]int
	sourceChapters map[Source][]int
}

// NewCorpus validates the inputs and builds an immutable corpus.
// sourceChapters lists the numbered chapters each source's body store holds.
func NewCorpus(sections []Section, chapters []Chapter, sourceChapters map[Source][]int) (*Corpus, error) {
	if err := ValidateSections(sections, sourceChapters); err != nil {
		return nil, err
	}
	if err := ValidateChapters(chapters); err != nil {
		return nil, err
	}

	c := &Corpus{
		sections:       make([]Section, len(sections)),
		byID:           make(map[string]int, len(sections)),
		chapters:       make([]Chapter, len(chapters)),
		chapterByID:    make(map[int]int, len(chapters)),
		sourceChapters: make(map[Source][]int, len(sourceChapters)),
	}
	for i, s := range sections {
		s.Keywords = slices.Clone(s.Keywords)
		c.sections[i] = s
		c.byID[s.ID] = i
	}
	for i, ch := range chapters {
		c.chapters[i] = cloneChapter(ch)
		c.chapterByID[ch.ID] = i
	}
	for src, nums := range sourceChapters {
		nums = slices.Clone(nums)
		slices.Sort(nums)
		c.sourceChapters[src] = slices.Compact(nums)
	}
	return c, nil
}

// Len returns the number of sections.
func (c *Corpus) Len() int {
	return len(c.sections)
}

// Sections returns all sections in corpus order.
func (c *Corpus) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		s.Keywords = slices.Clone(s.Keywords)
		out[i] = s
	}
	return out
}

// SectionsBySource returns the sections owned by src, in corpus order.
func (c *Corpus) SectionsBySource(src Source) []Section {
	var out []Section
	for _, s := range c.sections {
		if s.Source == src {
			s.Keywords = slices.Clone(s.Keywords)
			out = append(out, s)
		}
	}
	return out
}

// Section looks up a section by id.
func (c *Corpus) Section(id string) (Section, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Section{}, false
	}
	s := c.sections[i]
	s.Keywords = slices.Clone(s.Keywords)
	return s, true
}

// Has reports whether id is a known section id.
func (c *Corpus) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Chapters returns the legacy chapter index.
func (c *Corpus) Chapters() []Chapter {
	out := make([]Chapter, len(c.chapters))
	for i, ch := range c.chapters {
		out[i] = cloneChapter(ch)
	}
	return out
}

// Chapter looks up a legacy chapter by id.
func (c *Corpus) Chapter(id int) (Chapter, bool) {
	i, ok := c.chapterByID[id]
	if !ok {
		return Chapter{}, false
	}
	return cloneChapter(c.chapters[i]), true
}

// ChapterCount returns the number of numbered chapters held for src.
func (c *Corpus) ChapterCount(src Source) int {
	return len(c.sourceChapters[src])
}

// SourceChapters returns the numbered chapters held for src, in ascending order.
func (c *Corpus) SourceChapters(src Source) []int {
	return slices.Clone(c.sourceChapters[src])
}

// SectionIDsForChapter returns the ids of sections pointing at the same body as a legacy chapter.
func (c *Corpus) SectionIDsForChapter(ch Chapter) []string {
	var ids []string
	for _, s := range c.sections {
		if s.Source != ch.Source {
			continue
		}
		if s.Source == SourceTemps && s.Chapter != ch.ID {
			continue
		}
		ids = append(ids, s.ID)
	}
	return ids
}

func cloneChapter(ch Chapter) Chapter {
	ch.Keywords = slices.Clone(ch.Keywords)
	articles := make([]Article, len(ch.Articles))
	for i, a := range ch.Articles {
		a.Keywords = slices.Clone(a.Keywords)
		articles[i] = a
	}
	ch.Articles = articles
	return ch
}
