package storage

import (
	"fmt"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// DocumentMUS serializes core.Document values in MUS format.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v core.Document, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Source), bs)
	n += varint.Int.Marshal(v.Chapter, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	return n + ord.String.Marshal(v.Body, bs[n:])
}

func (s documentMUS) Unmarshal(bs []byte) (v core.Document, n int, err error) {
	var (
		source string
		n1     int
	)
	source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Source = core.Source(source)
	v.Chapter, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMUS) Size(v core.Document) (size int) {
	size = ord.String.Size(string(v.Source))
	size += varint.Int.Size(v.Chapter)
	size += ord.String.Size(v.Title)
	return size + ord.String.Size(v.Body)
}

func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// ValidateDocument checks that a document can be addressed and stored.
func ValidateDocument(doc *core.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if !doc.Source.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidDocument, core.ErrUnknownSource, doc.Source)
	}
	if doc.Chapter < 0 {
		return fmt.Errorf("%w: %w %d", ErrInvalidDocument, core.ErrUnknownChapter, doc.Chapter)
	}
	return nil
}
