package search

import "github.com/poiesic/docquery/core"

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during
// retrieval.
type SearchMonitor interface {
	Start(query string, namespaces []string)
	NamespaceQueried(namespace string, matches int)
	NamespaceFailed(namespace string, err error)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)      {}
func (n *noopMonitor) NamespaceQueried(_ string, _ int) {}
func (n *noopMonitor) NamespaceFailed(_ string, _ error) {}
func (n *noopMonitor) Finish(_ []core.Match)           {}
