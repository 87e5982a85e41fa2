package scene

import "github.com/lacylights/ledshow/internal/engineerr"

// Set is the loaded show: an ordered list of scenes plus a current-scene
// cursor. It is owned exclusively by the scene manager; the frame loop
// only ever reads through Selection.
type Set struct {
	Scenes  []Scene
	Current int
}

// Scene returns the scene at the current cursor.
func (s *Set) Scene() (*Scene, error) {
	return s.SceneAt(s.Current)
}

// SceneAt returns the scene at id, or an error if out of range.
func (s *Set) SceneAt(id int) (*Scene, error) {
	if id < 0 || id >= len(s.Scenes) {
		return nil, engineerr.Lookupf("scene index %d out of range [0,%d)", id, len(s.Scenes))
	}
	return &s.Scenes[id], nil
}

// Selection names one (scene, effect, palette) triple within a Set.
// ActiveSelection and PendingSelection are both this shape; the scene
// manager distinguishes them by field name, not type.
type Selection struct {
	SceneIndex   int
	EffectIndex  int
	PaletteIndex int
}

// Resolve looks up the scene, effect, and palette named by sel within
// set, returning a LookupError naming the first index that is invalid.
func (sel Selection) Resolve(set *Set) (*Scene, *Effect, *Palette, error) {
	sc, err := set.SceneAt(sel.SceneIndex)
	if err != nil {
		return nil, nil, nil, err
	}
	eff, err := sc.Effect(sel.EffectIndex)
	if err != nil {
		return nil, nil, nil, err
	}
	pal, err := sc.Palette(sel.PaletteIndex)
	if err != nil {
		return nil, nil, nil, err
	}
	return sc, eff, pal, nil
}
