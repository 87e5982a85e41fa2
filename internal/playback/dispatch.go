package playback

import (
	"time"

	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/control"
)

// Apply dispatches one decoded control command to the matching scene
// manager operation. Called once per queued command at the top of each
// frame, so every command applied between two frames is fully visible
// at the next frame or fully deferred — never partially applied.
func (m *Manager) Apply(cmd control.Command, now time.Time, loader ShowLoader) {
	switch cmd.Kind {
	case control.LoadShow:
		set, err := loader.LoadScenes(withJSONExt(cmd.Path))
		if err != nil {
			m.log.Warn("playback: load_json failed", zap.String("path", cmd.Path), zap.Error(err))
			return
		}
		m.LoadShow(set)

	case control.LoadDissolveShow:
		ds, err := loader.LoadDissolvePatterns(withJSONExt(cmd.Path))
		if err != nil {
			m.log.Warn("playback: load_dissolve_json failed", zap.String("path", cmd.Path), zap.Error(err))
			return
		}
		m.LoadDissolveShow(ds)

	case control.ChangeScene:
		_ = m.CacheScene(cmd.ID)

	case control.ChangeEffect:
		_ = m.CacheEffect(cmd.ID)

	case control.ChangePalette:
		_ = m.CachePalette(cmd.ID)

	case control.ChangePattern:
		m.TriggerPattern(now)

	case control.Pause:
		m.Pause()

	case control.Resume:
		m.Resume()

	case control.PaletteEntry:
		if err := m.UpdatePaletteEntry(cmd.PaletteID, cmd.ColorID, cmd.R, cmd.G, cmd.B); err != nil {
			m.log.Warn("playback: palette entry update rejected", zap.Error(err))
		}

	case control.SetDissolvePattern:
		_ = m.SetDissolvePattern(cmd.ID)

	case control.SetSpeedPercent:
		m.SetSpeedPercent(cmd.Value)

	case control.SetMasterBrightness:
		m.SetMasterBrightness(cmd.Value)

	case control.Ping, control.Status:
		// Read-only supplement: decoded but not answered; neither the
		// scene manager nor the frame loop sends a reply.
	}
}
