package playback

import (
	"strings"

	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/scene"
)

// ShowLoader is the boundary contract for the external asset loader:
// parsing on-disk show and dissolve-pattern files is explicitly out of
// scope for the engine core (see the non-goals) — the core only needs
// something that turns a path into a loaded SceneSet or DissolveSet.
type ShowLoader interface {
	LoadScenes(path string) (*scene.Set, error)
	LoadDissolvePatterns(path string) (*dissolve.Set, error)
}

// withJSONExt appends ".json" to path if it has no extension, matching
// /load_json's documented auto-append behavior.
func withJSONExt(path string) string {
	if strings.Contains(path[strings.LastIndex(path, "/")+1:], ".") {
		return path
	}
	return path + ".json"
}
