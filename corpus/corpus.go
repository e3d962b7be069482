// Package corpus loads the internal policy corpus: the section index, the
// legacy chapter index, the synonym table and the body documents.
//
// The default corpus is embedded in the binary. LoadDir reads the same layout
// from a directory so the data can be edited without rebuilding.
package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/pelletier/go-toml/v2"
)

//go:embed data
var embedded embed.FS

const (
	manifestFile = "corpus.toml"
	sectionsFile = "sections.toml"
	chaptersFile = "chapters.toml"
	synonymsFile = "synonyms.toml"
)

// Bundle is everything loaded from a corpus directory.
type Bundle struct {
	Corpus    *core.Corpus
	Synonyms  []core.Synonym
	Documents []*core.Document
}

type manifestFileData struct {
	Documents []struct {
		Source  string `toml:"source"`
		Chapter int    `toml:"chapter"`
		Title   string `toml:"title"`
		File    string `toml:"file"`
	} `toml:"document"`
}

type sectionsFileData struct {
	Sections []struct {
		ID       string   `toml:"id"`
		Title    string   `toml:"title"`
		Source   string   `toml:"source"`
		Chapter  int      `toml:"chapter"`
		Keywords []string `toml:"keywords"`
		Summary  string   `toml:"summary"`
	} `toml:"section"`
}

type chaptersFileData struct {
	Chapters []struct {
		ID       int      `toml:"id"`
		Title    string   `toml:"title"`
		Source   string   `toml:"source"`
		Keywords []string `toml:"keywords"`
		Articles []struct {
			Title    string   `toml:"title"`
			Page     int      `toml:"page"`
			Keywords []string `toml:"keywords"`
		} `toml:"article"`
	} `toml:"chapter"`
}

type synonymsFileData struct {
	Synonyms []struct {
		Key        string   `toml:"key"`
		Alternates []string `toml:"alternates"`
	} `toml:"synonym"`
}

// Load reads the embedded corpus.
func Load() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadDir reads a corpus laid out like the embedded one from dir.
func LoadDir(dir string) (*Bundle, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads and validates a corpus from fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	var manifest manifestFileData
	if err := decodeFile(fsys, manifestFile, &manifest); err != nil {
		return nil, err
	}

	docs := make([]*core.Document, 0, len(manifest.Documents))
	sourceChapters := make(map[core.Source][]int)
	for _, d := range manifest.Documents {
		src := core.Source(d.Source)
		if !src.Valid() {
			return nil, fmt.Errorf("%w: document %s: %w %q", core.ErrInvalidCorpus, d.File, core.ErrUnknownSource, d.Source)
		}
		body, err := fs.ReadFile(fsys, d.File)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", d.File, err)
		}
		docs = append(docs, &core.Document{
			Source:  src,
			Chapter: d.Chapter,
			Title:   d.Title,
			Body:    string(body),
		})
		if d.Chapter > 0 {
			sourceChapters[src] = append(sourceChapters[src], d.Chapter)
		}
	}

	var sf sectionsFileData
	if err := decodeFile(fsys, sectionsFile, &sf); err != nil {
		return nil, err
	}
	sections := make([]core.Section, 0, len(sf.Sections))
	for _, s := range sf.Sections {
		sections = append(sections, core.Section{
			ID:       s.ID,
			Title:    s.Title,
			Keywords: s.Keywords,
			Source:   core.Source(s.Source),
			Chapter:  s.Chapter,
			Summary:  s.Summary,
		})
	}

	var cf chaptersFileData
	if err := decodeFile(fsys, chaptersFile, &cf); err != nil {
		return nil, err
	}
	chapters := make([]core.Chapter, 0, len(cf.Chapters))
	for _, c := range cf.Chapters {
		ch := core.Chapter{
			ID:       c.ID,
			Title:    c.Title,
			Source:   core.Source(c.Source),
			Keywords: c.Keywords,
		}
		for _, a := range c.Articles {
			ch.Articles = append(ch.Articles, core.Article{
				Title:    a.Title,
				Page:     a.Page,
				Keywords: a.Keywords,
			})
		}
		chapters = append(chapters, ch)
	}

	var yf synonymsFileData
	if err := decodeFile(fsys, synonymsFile, &yf); err != nil {
		return nil, err
	}
	synonyms := make([]core.Synonym, 0, len(yf.Synonyms))
	for _, s := range yf.Synonyms {
		synonyms = append(synonyms, core.Synonym{Key: s.Key, Alternates: s.Alternates})
	}

	c, err := core.NewCorpus(sections, chapters, sourceChapters)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Corpus:    c,
		Synonyms:  synonyms,
		Documents: docs,
	}, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %w", core.ErrInvalidCorpus, name, err)
	}
	return nil
}
