package scene

import "github.com/lacylights/ledshow/internal/colormath"

// PaletteSize is the fixed number of color entries every palette carries.
const PaletteSize = 6

// Palette is a fixed-size ordered sequence of RGB entries, addressed by
// color index.
type Palette [PaletteSize]colormath.RGB

// Lookup returns the palette entry at i, or black if i is out of range —
// the core never errors on an out-of-range color index, it clamps to a
// safe default per the data model's ingestion-time validation contract.
func (p Palette) Lookup(i int) colormath.RGB {
	if i < 0 || i >= PaletteSize {
		return colormath.Black
	}
	return p[i]
}
