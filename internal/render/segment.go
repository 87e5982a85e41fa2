// Package render turns segment definitions into LED colors: the pure
// per-segment renderer (§ segment renderer) and the effect compositor
// that lays rendered segments onto a strip-sized buffer.
package render

import (
	"time"

	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/dimmer"
	"github.com/lacylights/ledshow/internal/scene"
)

// Segment produces the ordered list of colored LED contributions for
// one segment at now: dimmer-gated, with inter-point color and
// transparency interpolation between consecutive color points.
func Segment(seg *scene.Segment, palette *scene.Palette, now time.Time) []colormath.RGB {
	elapsedMs := now.Sub(seg.SegmentStartTime).Milliseconds()
	b := dimmer.Envelope(seg.DimmerTime).Value(elapsedMs)
	if b <= 0 {
		return nil
	}

	total := 0
	for _, l := range seg.Length {
		if l > 0 {
			total += l
		}
	}
	out := make([]colormath.RGB, 0, total+len(seg.Color))

	lastInterpolated := false
	for k := 0; k < len(seg.Length); k++ {
		lk := seg.LengthAt(k)
		if lk <= 0 {
			continue
		}

		ck := seg.ColorAt(k)
		tauK := seg.TransparencyAt(k)
		interpolate := k+1 < len(seg.Color)
		lastInterpolated = interpolate

		var ck1 int
		var tau1 float64
		if interpolate {
			ck1 = seg.ColorAt(k + 1)
			tau1 = seg.TransparencyAt(k + 1)
		}

		for j := 0; j < lk; j++ {
			var col colormath.RGB
			var tau float64
			if interpolate && lk > 1 {
				f := float64(j) / float64(lk-1)
				col = colormath.InterpolateColor(palette.Lookup(ck), palette.Lookup(ck1), f)
				tau = colormath.InterpolateTransparency(tauK, tau1, f)
			} else {
				col = palette.Lookup(ck)
				tau = tauK
			}
			out = append(out, colormath.CalculateSegmentColor(col, tau, b))
		}
	}

	// A color point already blended toward as an interpolation endpoint
	// above must not also be emitted again here as a standalone point.
	start := len(seg.Length)
	if lastInterpolated {
		start++
	}
	for k := start; k < len(seg.Color); k++ {
		col := palette.Lookup(seg.ColorAt(k))
		tau := seg.TransparencyAt(k)
		out = append(out, colormath.CalculateSegmentColor(col, tau, b))
	}

	return out
}
