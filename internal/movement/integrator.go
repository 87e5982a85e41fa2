// Package movement advances a segment's strip position one frame at a
// time, tracking the sub-pixel remainder between frames and applying
// either edge-reflection or wraparound at the segment's travel range.
package movement

// Range is the inclusive [Lo, Hi] bound a segment's position is kept
// within.
type Range struct {
	Lo int
	Hi int
}

// State is the mutable per-segment motion state advanced each frame.
// CurrentPosition and FractionalAccumulator are owned exclusively by
// Step; callers must not mutate them between calls.
type State struct {
	MoveSpeed             float64
	CurrentPosition       int
	FractionalAccumulator float64
}

// Step advances state by one frame at the given fps and range, mutating
// state in place and returning the resulting integer position. speedScale
// folds in the scene manager's global speed percentage (1.0 = unscaled).
func Step(state *State, fps float64, r Range, edgeReflect bool, speedScale float64) int {
	if fps <= 0 {
		fps = 1
	}

	delta := state.MoveSpeed*speedScale/fps + state.FractionalAccumulator
	whole := truncateTowardZero(delta)
	state.FractionalAccumulator = delta - whole

	p := state.CurrentPosition + int(whole)

	if edgeReflect {
		p = reflect(p, r, state)
	} else {
		p = wrap(p, r)
	}

	state.CurrentPosition = p
	return p
}

// reflect bounces p within r, flipping state.MoveSpeed's sign each time
// a bound is crossed so subsequent frames continue the reflected motion.
// At most two settling passes are applied, matching a segment that can
// overshoot by no more than one full range width per frame.
func reflect(p int, r Range, state *State) int {
	span := r.Hi - r.Lo
	if span <= 0 {
		return r.Lo
	}

	for pass := 0; pass < 2; pass++ {
		switch {
		case p < r.Lo:
			p = r.Lo + (r.Lo - p)
			state.MoveSpeed = -state.MoveSpeed
		case p > r.Hi:
			p = r.Hi - (p - r.Hi)
			state.MoveSpeed = -state.MoveSpeed
		default:
			return p
		}
	}
	return p
}

// wrap maps p into [lo, hi] via modular arithmetic, symmetric for
// negative moduli (Go's % keeps the sign of its dividend).
func wrap(p int, r Range) int {
	width := r.Hi - r.Lo + 1
	if width <= 0 {
		return r.Lo
	}
	m := (p - r.Lo) % width
	if m < 0 {
		m += width
	}
	return r.Lo + m
}

func truncateTowardZero(v float64) float64 {
	if v < 0 {
		return -float64(int64(-v))
	}
	return float64(int64(v))
}
