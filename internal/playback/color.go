package playback

import "github.com/lacylights/ledshow/internal/colormath"

// rgbFrom clamps r, g, b to [0,255] and builds an RGB triple, matching
// the engine's "validate ranges" contract for palette entry updates.
func rgbFrom(r, g, b int) colormath.RGB {
	return colormath.RGB{
		R: byte(clampInt(r, 0, 255)),
		G: byte(clampInt(g, 0, 255)),
		B: byte(clampInt(b, 0, 255)),
	}
}
