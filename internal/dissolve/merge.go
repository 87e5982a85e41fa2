package dissolve

import (
	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/dimmer"
)

// Merge blends source into target per pattern at elapsed milliseconds t
// since the dissolve began, returning the composited buffer and whether
// every LED's timeline has settled permanently on target. Each LED's
// fade-in/fade-out progress fraction is shaped by its own record's
// Curve before blending; an empty Curve is a plain linear blend.
//
// LEDs beyond the pattern's covered prefix hard-switch to target
// immediately and count as complete from t=0.
func Merge(pattern Pattern, source, target []colormath.RGB, t int64) ([]colormath.RGB, bool) {
	n := len(target)
	if len(source) < n {
		n = len(source)
	}

	out := make([]colormath.RGB, n)
	allComplete := true

	for s := 0; s < n; s++ {
		rec, covered := pattern.At(s)
		if !covered {
			out[s] = target[s]
			continue
		}

		switch {
		case t < rec.StartMs:
			out[s] = source[s]
			allComplete = false

		case rec.FadeInMs > 0 && t < rec.StartMs+rec.FadeInMs:
			f := float64(t-rec.StartMs) / float64(rec.FadeInMs)
			out[s] = colormath.InterpolateColor(source[s], target[s], dimmer.Apply(f, rec.Curve))
			allComplete = false

		case t < rec.StartMs+rec.FadeInMs+rec.HoldMs:
			out[s] = target[s]
			allComplete = false

		case rec.FadeOutMs > 0 && t < rec.StartMs+rec.FadeInMs+rec.HoldMs+rec.FadeOutMs:
			fadeOutStart := rec.StartMs + rec.FadeInMs + rec.HoldMs
			f := float64(t-fadeOutStart) / float64(rec.FadeOutMs)
			out[s] = colormath.InterpolateColor(target[s], source[s], dimmer.Apply(f, rec.Curve))
			allComplete = false

		default:
			out[s] = target[s]
			if !rec.done(t) {
				allComplete = false
			}
		}
	}

	return out, allComplete
}
