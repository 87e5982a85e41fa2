// Package playback implements the scene manager (state owner for the
// loaded show, the active/pending selections, and the dissolve state
// machine) and the frame loop that ticks it at the active scene's fps.
package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/engineerr"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/internal/scene"
)

// Manager owns the loaded SceneSet and DissolveSet, the active/pending
// selections, and global playback parameters. All mutation happens
// under mu; the frame loop takes the lock once at the top of each
// frame to read a consistent snapshot, per the single-writer discipline
// the control channel and frame loop share.
type Manager struct {
	mu sync.Mutex

	set         *scene.Set
	dissolveSet *dissolve.Set

	active  scene.Selection
	pending scene.Selection

	dissolveState dissolve.State

	paused           bool
	masterBrightness uint8
	speedPercent     int

	activeDissolvePatternIndex int

	log *zap.Logger
	bus *events.Bus
}

// New builds a Manager with default playback parameters: unpaused,
// full master brightness, unscaled speed.
func New(log *zap.Logger, bus *events.Bus) *Manager {
	return &Manager{
		masterBrightness: 255,
		speedPercent:     100,
		log:              log,
		bus:              bus,
	}
}

// LoadShow replaces the loaded SceneSet, resets active/pending to the
// first scene's declared effect and palette, and idles any in-progress
// dissolve. Playback of the new show begins on the next frame.
func (m *Manager) LoadShow(set *scene.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set = set
	if len(set.Scenes) == 0 {
		m.active = scene.Selection{}
	} else {
		first := set.Scenes[0]
		m.active = scene.Selection{
			SceneIndex:   0,
			EffectIndex:  first.CurrentEffectID,
			PaletteIndex: first.CurrentPaletteID,
		}
	}
	m.pending = m.active
	m.dissolveState = dissolve.State{}

	m.bus.Publish(events.TopicSceneChanged, m.active)
}

// LoadDissolveShow replaces the loaded DissolveSet.
func (m *Manager) LoadDissolveShow(ds *dissolve.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dissolveSet = ds
}

// CacheScene updates the pending scene index. An invalid id is reported
// and leaves pending unchanged.
func (m *Manager) CacheScene(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set == nil || id < 0 || id >= len(m.set.Scenes) {
		err := engineerr.Lookupf("cache_scene: scene index %d invalid", id)
		m.log.Warn("playback: cache_scene rejected", zap.Error(err))
		return err
	}
	m.pending.SceneIndex = id
	return nil
}

// CacheEffect updates the pending effect index, validated against the
// scene currently named by pending.
func (m *Manager) CacheEffect(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, err := m.pendingScene()
	if err != nil {
		return err
	}
	if id < 0 || id >= len(sc.Effects) {
		err := engineerr.Lookupf("cache_effect: effect index %d invalid", id)
		m.log.Warn("playback: cache_effect rejected", zap.Error(err))
		return err
	}
	m.pending.EffectIndex = id
	return nil
}

// CachePalette updates the pending palette index, validated against the
// scene currently named by pending.
func (m *Manager) CachePalette(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, err := m.pendingScene()
	if err != nil {
		return err
	}
	if id < 0 || id >= len(sc.Palettes) {
		err := engineerr.Lookupf("cache_palette: palette index %d invalid", id)
		m.log.Warn("playback: cache_palette rejected", zap.Error(err))
		return err
	}
	m.pending.PaletteIndex = id
	return nil
}

// pendingScene resolves the scene named by pending.SceneIndex. Caller
// must hold mu.
func (m *Manager) pendingScene() (*scene.Scene, error) {
	if m.set == nil {
		err := engineerr.Lookupf("no show loaded")
		m.log.Warn("playback: cache rejected", zap.Error(err))
		return nil, err
	}
	return m.set.SceneAt(m.pending.SceneIndex)
}

// TriggerPattern starts a dissolve from active to pending using the
// currently selected dissolve pattern, unless the two already match —
// in which case it is a no-op. A dissolve already in progress is
// replaced immediately, reusing the in-flight dissolve's source
// selection as the new source; the partially blended frame is not
// carried over.
func (m *Manager) TriggerPattern(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == m.active {
		return
	}

	source := m.active
	if m.dissolveState.Running() {
		source = m.dissolveState.Source
	}

	var pattern dissolve.Pattern
	if m.dissolveSet != nil {
		pattern = m.dissolveSet.Active()
	}

	m.dissolveState.Start(source, m.pending, pattern, now)
	m.log.Info("playback: dissolve started",
		zap.String("session_id", m.dissolveState.SessionID),
		zap.Int("source_scene", source.SceneIndex),
		zap.Int("target_scene", m.pending.SceneIndex),
	)
	m.bus.Publish(events.TopicDissolveProgress, m.dissolveState.Phase)
}

// Pause freezes output and segment motion; the frame loop still runs
// and the dimmer envelope keeps advancing against the wall clock, but
// transmission and movement.Step both stop (see the frame loop).
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

// Resume un-freezes output.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

// SetMasterBrightness clamps v to [0,255] and applies it globally.
func (m *Manager) SetMasterBrightness(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterBrightness = uint8(clampInt(v, 0, 255))
}

// SetSpeedPercent clamps v to [0,1023]. The effective per-frame segment
// speed is move_speed·(speed_percent/100)/fps.
func (m *Manager) SetSpeedPercent(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speedPercent = clampInt(v, 0, 1023)
}

// SetDissolvePattern selects the active dissolve pattern by index.
func (m *Manager) SetDissolvePattern(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dissolveSet == nil || id < 0 || id >= len(m.dissolveSet.Patterns) {
		err := engineerr.Lookupf("set_dissolve_pattern: index %d invalid", id)
		m.log.Warn("playback: set_dissolve_pattern rejected", zap.Error(err))
		return err
	}
	m.dissolveSet.Current = id
	m.activeDissolvePatternIndex = id
	return nil
}

// UpdatePaletteEntry validates ranges and mutates the active scene's
// palette store in place. It takes effect on the very next rendered
// frame.
func (m *Manager) UpdatePaletteEntry(paletteID, colorID, r, g, b int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set == nil {
		return engineerr.Lookupf("update_palette_entry: no show loaded")
	}
	sc, err := m.set.SceneAt(m.active.SceneIndex)
	if err != nil {
		return err
	}
	if paletteID < 0 || paletteID >= len(sc.Palettes) {
		return engineerr.Lookupf("update_palette_entry: palette index %d invalid", paletteID)
	}
	if colorID < 0 || colorID >= scene.PaletteSize {
		return engineerr.Validationf("update_palette_entry: color index %d out of range", colorID)
	}

	sc.Palettes[paletteID][colorID] = rgbFrom(r, g, b)
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
