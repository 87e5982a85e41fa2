// Package dissolve implements the per-LED cross-fade scheduler that
// blends a source scene frame into a target scene frame over a
// user-supplied timing pattern.
package dissolve

import "github.com/lacylights/ledshow/internal/dimmer"

// Record is one LED's dissolve timeline: it holds source color for
// StartMs, blends in over FadeInMs, holds target color for HoldMs, then
// optionally blends back toward source over FadeOutMs before settling
// on target. Curve shapes the fade-in/fade-out progress fraction before
// the linear color blend; an empty Curve is a plain linear blend.
type Record struct {
	StartMs   int64
	FadeInMs  int64
	HoldMs    int64
	FadeOutMs int64
	Curve     dimmer.EasingCurve
}

// done reports whether, at elapsed t, this LED's timeline has completed
// and settled permanently on target.
func (r Record) done(t int64) bool {
	return t >= r.StartMs+r.FadeInMs+r.HoldMs+r.FadeOutMs
}

// Pattern is a per-LED-indexed dissolve timeline. A pattern shorter than
// the strip applies only to its covered prefix; uncovered LEDs hard-
// switch to target at t=0.
type Pattern []Record

// At returns the record governing LED s, and whether s falls within the
// pattern's covered prefix.
func (p Pattern) At(s int) (Record, bool) {
	if s < 0 || s >= len(p) {
		return Record{}, false
	}
	return p[s], true
}

// Set is an ordered list of dissolve patterns plus a current-pattern
// cursor, selected by the control channel's /set_dissolve_pattern.
type Set struct {
	Patterns []Pattern
	Current  int
}

// Active returns the currently selected pattern, or nil if Current is
// out of range (an empty Set, or a stale cursor after a reload).
func (s *Set) Active() Pattern {
	if s == nil || s.Current < 0 || s.Current >= len(s.Patterns) {
		return nil
	}
	return s.Patterns[s.Current]
}
