package gateway

import "github.com/poiesic/readmore/core"

// Monitor provides hooks to observe how related pages are resolved.
// Implement this interface to track which source served a request.
type Monitor interface {
	Start(limit int)
	CuratedQuery(titles []string)
	SearchQuery(title string)
	NoSource()
	QueryFailed(err error)
	Finish(pages []core.PageSummary)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int)                 {}
func (n *noopMonitor) CuratedQuery(_ []string)     {}
func (n *noopMonitor) SearchQuery(_ string)        {}
func (n *noopMonitor) NoSource()                   {}
func (n *noopMonitor) QueryFailed(_ error)         {}
func (n *noopMonitor) Finish(_ []core.PageSummary) {}
