// Package build provides the execution engine that walks a BuildPlan and
// runs its expanded commands as external processes.
package build

import "sync"

// RunState is the shared mutable state of one build run: the progress
// denominator, the completed-command counter, the failure flag, and the name
// of the project currently building.
//
// A single mutex guards the counter and the flag together so a reader can
// never observe a stale count while a sibling task is setting the flag.
// The failure flag, once set, stays set for the remainder of the run.
type RunState struct {
	mu      sync.Mutex
	total   int
	done    int
	failed  bool
	project string
}

// NewRunState creates an empty run state.
func NewRunState() *RunState {
	return &RunState{}
}

// SetTotal records the total expected command count, computed once from the
// BuildPlan before execution starts.
func (s *RunState) SetTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = n
}

// SetProject records the project currently being built, for progress display.
func (s *RunState) SetProject(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = name
}

// CommandDone increments the completed-command counter.
func (s *RunState) CommandDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done++
}

// MarkFailed sets the failure flag.
func (s *RunState) MarkFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
}

// Failed reports whether any command has failed so far.
func (s *RunState) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Progress returns a consistent snapshot of the run state. This is the
// read surface the progress monitor polls; it holds the lock only long
// enough to copy four fields.
func (s *RunState) Progress() (done, total int, failed bool, project string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done, s.total, s.failed, s.project
}
