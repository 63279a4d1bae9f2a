package search

import (
	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
)

// ScanMonitor provides hooks to observe a corpus scan.
// Implement this interface to trace or time individual scans.
type ScanMonitor interface {
	Start(term string, metric distance.Metric, threshold int, total int)
	RecordMatched(index int, hits int)
	Finish(result *core.MatchResultSet, err error)
}

// noopMonitor is a no-op implementation of ScanMonitor
type noopMonitor struct{}

var _ ScanMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ distance.Metric, _ int, _ int) {}
func (n *noopMonitor) RecordMatched(_ int, _ int)                       {}
func (n *noopMonitor) Finish(_ *core.MatchResultSet, _ error)           {}
