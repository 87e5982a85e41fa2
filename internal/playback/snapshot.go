package playback

import (
	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/internal/scene"
)

// Snapshot is the set of fields the frame loop reads once at the top of
// a frame, taken under mu so every value reflects the same instant.
type Snapshot struct {
	Set        *scene.Set
	Active     scene.Selection
	Pending    scene.Selection
	Dissolve   dissolve.State
	Paused     bool
	Brightness uint8
	SpeedPct   int
}

// Snapshot copies the state the frame loop needs for one frame. Segment
// motion state is not part of the snapshot: the frame loop advances it
// directly on the scene's segments, which are long-lived and shared.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Set:        m.set,
		Active:     m.active,
		Pending:    m.pending,
		Dissolve:   m.dissolveState,
		Paused:     m.paused,
		Brightness: m.masterBrightness,
		SpeedPct:   m.speedPercent,
	}
}

// CompleteDissolve transitions active to the dissolve's target and idles
// the dissolve state machine once the frame loop determines the dissolve
// has run its full duration.
func (m *Manager) CompleteDissolve() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active = m.dissolveState.Target
	m.dissolveState.Complete()
	m.bus.Publish(events.TopicSceneChanged, m.active)
}
