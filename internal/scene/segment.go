package scene

import (
	"time"

	"github.com/lacylights/ledshow/internal/dimmer"
	"github.com/lacylights/ledshow/internal/movement"
)

// Segment is the atomic visual primitive: a run of color/transparency
// points stretched across a moving, dimmer-modulated span of LEDs.
type Segment struct {
	ID int

	Color        []int
	Transparency []float64
	Length       []int

	MoveSpeed     float64
	MoveRange     movement.Range
	IsEdgeReflect bool

	DimmerTime dimmer.Envelope

	SegmentStartTime time.Time

	// Motion is the mutable state advanced once per frame by the
	// movement integrator. InitialPosition seeds CurrentPosition when
	// the segment is constructed or reset.
	InitialPosition int
	Motion          movement.State
}

// NewSegment builds a segment with its motion state seeded from
// InitialPosition and its birth time stamped for dimmer-envelope timing.
func NewSegment(id int, now time.Time) *Segment {
	return &Segment{
		ID:               id,
		SegmentStartTime: now,
	}
}

// Reset reseeds the segment's motion state to InitialPosition and
// restarts its dimmer-envelope clock at now. Control messages that
// replace a segment's definition call this; ordinary playback never does.
func (s *Segment) Reset(now time.Time) {
	s.Motion = movement.State{
		MoveSpeed:       s.MoveSpeed,
		CurrentPosition: s.InitialPosition,
	}
	s.SegmentStartTime = now
}

// ColorAt returns the palette color index at part k, or 0 if k is out of
// range for Color.
func (s *Segment) ColorAt(k int) int {
	if k < 0 || k >= len(s.Color) {
		return 0
	}
	return s.Color[k]
}

// TransparencyAt returns the transparency at part k, or 0 (fully opaque)
// if k is out of range.
func (s *Segment) TransparencyAt(k int) float64 {
	if k < 0 || k >= len(s.Transparency) {
		return 0
	}
	return s.Transparency[k]
}

// LengthAt returns the LED run length for part k, or 0 if k is out of
// range for Length.
func (s *Segment) LengthAt(k int) int {
	if k < 0 || k >= len(s.Length) {
		return 0
	}
	return s.Length[k]
}
