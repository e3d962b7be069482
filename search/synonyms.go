package search

import (
	"strings"

	"github.com/Nikkoola22/ATLAS/core"
)

type synonymEntry struct {
	key        string
	alternates []string
}

// SynonymTable expands query terms with alternate phrasings.
// Entries are normalized once at construction; the table is read-only afterwards.
type SynonymTable struct {
	entries []synonymEntry
}

// NewSynonymTable builds a table from entries, keeping their order.
// Keys and alternates that normalize to "" are dropped.
func NewSynonymTable(entries []core.Synonym) *SynonymTable {
	t := &SynonymTable{entries: make([]synonymEntry, 0, len(entries))}
	for _, e := range entries {
		entry := synonymEntry{key: Normalize(e.Key)}
		for _, alt := range e.Alternates {
			if n := Normalize(alt); n != "" {
				entry.alternates = append(entry.alternates, n)
			}
		}
		if entry.key == "" && len(entry.alternates) == 0 {
			continue
		}
		t.entries = append(t.entries, entry)
	}
	return t
}

// Len returns the number of entries.
func (t *SynonymTable) Len() int {
	return len(t.entries)
}

// Expand returns the normalized term followed by the key and alternates of every
// entry whose key or any alternate is a substring of the term. The result is
// deduplicated and keeps first-seen order. An empty term expands to nothing.
func (t *SynonymTable) Expand(term string) []string {
	normalized := Normalize(term)
	if normalized == "" {
		return nil
	}

	out := []string{normalized}
	seen := map[string]bool{normalized: true}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	if t == nil {
		return out
	}
	for _, e := range t.entries {
		if !e.matches(normalized) {
			continue
		}
		add(e.key)
		for _, alt := range e.alternates {
			add(alt)
		}
	}
	return out
}

func (e *synonymEntry) matches(term string) bool {
	if e.key != "" && strings.Contains(term, e.key) {
		return true
	}
	for _, alt := range e.alternates {
		if strings.Contains(term, alt) {
			return true
		}
	}
	return false
}
