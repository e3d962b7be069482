package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for stored documents.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies the document group that owns a section's body text.
type Source string

const (
	// SourceTemps is the working time and leave rules, split in numbered chapters.
	SourceTemps Source = "temps"
	// SourceFormation is the training regulation.
	SourceFormation Source = "formation"
	// SourceTeletravail is the remote work protocol.
	SourceTeletravail Source = "teletravail"
)

// Sources lists every known source in index order.
var Sources = []Source{SourceTemps, SourceFormation, SourceTeletravail}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceTemps, SourceFormation, SourceTeletravail:
		return true
	}
	return false
}

// Section is a keyword-tagged unit of the internal policy corpus.
// It never carries body text; bodies live in a document store.
type Section struct {
	ID       string
	Title    string
	Keywords []string
	Source   Source
	Chapter  int    // 0 when the source is not subdivided for this section
	Summary  string // Optional, only used by the locator index
}

// HasChapter reports whether the section points at a numbered chapter.
func (s *Section) HasChapter() bool {
	return s.Chapter > 0
}

// ContentKey identifies the body block a section resolves to.
// Two sections with the same key share the same body text.
func (s *Section) ContentKey() string {
	if s.Source == SourceTemps && s.HasChapter() {
		return string(SourceTemps) + "_ch" + strconv.Itoa(s.Chapter)
	}
	return string(s.Source)
}

// Article is a sub-item of a legacy chapter, with its own keywords.
type Article struct {
	Title    string
	Page     int
	Keywords []string
}

// Chapter is an entry of the legacy chapter index scored by the single-pass strategy.
type Chapter struct {
	ID       int
	Title    string
	Source   Source
	Keywords []string
	Articles []Article
}

// Document is a body text block as held by a document store.
type Document struct {
	Source  Source
	Chapter int
	Title   string
	Body    string
}

// Tuple returns a string representation of the document as "(Source,Chapter)".
// This is used for generating deterministic IDs.
func (d *Document) Tuple() string {
	return DocumentTuple(d.Source, d.Chapter)
}

// DocumentTuple formats the lookup tuple of a body block.
func DocumentTuple(source Source, chapter int) string {
	return "(" + string(source) + "," + strconv.Itoa(chapter) + ")"
}

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SearchResult is produced once per query and not modified afterwards.
type SearchResult struct {
	Answer             string
	SectionIDs         []string
	UsedReducedContext bool
}

// NumberedResult is a SearchResult reduced to its text plus the first number found in it.
type NumberedResult struct {
	Text       string
	Number     *int // nil when the answer holds no digit run
	SectionIDs []string
}

// Synonym is one entry of the synonym table: a canonical key and its alternates.
type Synonym struct {
	Key        string
	Alternates []string
}
