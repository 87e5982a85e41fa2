package scene

import "github.com/lacylights/ledshow/internal/engineerr"

// Scene owns one strip's geometry, timing, and the palettes/effects it
// can play. Identifiers are compact zero-origin indices into Palettes
// and Effects — the core never produces index gaps, so an ID doubles
// as a direct array position.
type Scene struct {
	ID       int
	LEDCount int
	FPS      int

	CurrentEffectID  int
	CurrentPaletteID int

	Palettes []Palette
	Effects  []Effect
}

// Effect returns the effect at id, or an error if id is out of range.
func (s *Scene) Effect(id int) (*Effect, error) {
	if id < 0 || id >= len(s.Effects) {
		return nil, engineerr.Lookupf("effect index %d out of range [0,%d)", id, len(s.Effects))
	}
	return &s.Effects[id], nil
}

// Palette returns the palette at id, or an error if id is out of range.
func (s *Scene) Palette(id int) (*Palette, error) {
	if id < 0 || id >= len(s.Palettes) {
		return nil, engineerr.Lookupf("palette index %d out of range [0,%d)", id, len(s.Palettes))
	}
	return &s.Palettes[id], nil
}
