package dissolve

import (
	"time"

	"github.com/lucsky/cuid"

	"github.com/lacylights/ledshow/internal/scene"
)

// Phase names where a dissolve sits in its lifecycle.
type Phase int

const (
	Idle Phase = iota
	Running
)

// State is the scene manager's cross-fade bookkeeping: which selections
// are blending, which pattern governs the blend, and when it started.
// It is created by Start and returns to Idle once every LED has
// completed (see Merge).
type State struct {
	Phase   Phase
	T0      time.Time
	Pattern Pattern
	Source  scene.Selection
	Target  scene.Selection

	// SessionID correlates every log line a single dissolve run emits
	// across the scene manager and frame loop, minted fresh each Start.
	SessionID string
}

// Start begins a dissolve from source to target using pattern, stamped
// at now. Calling Start while already Running replaces the in-flight
// dissolve immediately with the given source and target selections.
func (s *State) Start(source, target scene.Selection, pattern Pattern, now time.Time) {
	s.Phase = Running
	s.T0 = now
	s.Pattern = pattern
	s.Source = source
	s.Target = target
	s.SessionID = cuid.New()
}

// Complete transitions the dissolve back to Idle. Called once Merge
// reports every LED has settled on target.
func (s *State) Complete() {
	s.Phase = Idle
	s.Pattern = nil
}

// ElapsedMs returns milliseconds since the dissolve began, as of now.
func (s *State) ElapsedMs(now time.Time) int64 {
	return now.Sub(s.T0).Milliseconds()
}

// Running reports whether a dissolve is currently in progress.
func (s *State) Running() bool {
	return s.Phase == Running
}
