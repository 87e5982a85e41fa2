package render

import (
	"time"

	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/scene"
)

// Compose overlays every segment of effect onto an ledCount-sized RGB
// buffer, initialized to black, in segment order — later segments
// overwrite earlier ones at overlapping indices. The renderer has
// already folded transparency into the emitted color, so overwrite is
// the full story: transparency=1 means black, not see-through. Compose
// never mutates its inputs and never writes outside the buffer.
func Compose(ledCount int, effect *scene.Effect, palette *scene.Palette, now time.Time) []colormath.RGB {
	buffer := make([]colormath.RGB, ledCount)

	for _, seg := range effect.Segments {
		contribution := Segment(seg, palette, now)
		start := seg.Motion.CurrentPosition

		for i, c := range contribution {
			s := start + i
			if s < 0 || s >= ledCount {
				continue
			}
			buffer[s] = c
		}
	}

	return buffer
}
