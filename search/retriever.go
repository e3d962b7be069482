package search

import (
	"context"

	"github.com/Nikkoola22/ATLAS/core"
)

// Retriever answers a question from the corpus.
// *Scorer and *TwoStage are the two implementations.
type Retriever interface {
	Retrieve(ctx context.Context, question string, history []core.Message) (*core.SearchResult, error)
}

var (
	_ Retriever = (*Scorer)(nil)
	_ Retriever = (*TwoStage)(nil)
)
