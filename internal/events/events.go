// Package events contains message types shared between the scan
// orchestrator and the progress display.
package events

// StartedMsg is emitted once before the first project is inspected.
type StartedMsg struct {
	Total int
}

// ProgressMsg is emitted once per finished project, in completion order.
type ProgressMsg struct {
	Project   string // Project that just finished
	Remaining int    // Projects still queued or running
	Total     int    // Projects in the scan
}

// Done returns how many projects have finished.
func (m ProgressMsg) Done() int {
	return m.Total - m.Remaining
}

// DrainedMsg is emitted exactly once, after the last ProgressMsg.
type DrainedMsg struct {
	Total int
}
