package search

import "github.com/Nikkoola22/ATLAS/core"

// SearchMonitor provides hooks to observe a two-stage search.
// Implement this interface to track intermediate steps and results.
// Finish is called once per started search and receives nil when it failed.
type SearchMonitor interface {
	Start(question string)
	AfterLocate(sectionIDs []string)
	AfterLoad(sectionIDs []string, content string)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                 {}
func (n *noopMonitor) AfterLocate(_ []string)         {}
func (n *noopMonitor) AfterLoad(_ []string, _ string) {}
func (n *noopMonitor) Finish(_ *core.SearchResult)    {}
