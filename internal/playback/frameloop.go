package playback

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/control"
	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/internal/movement"
	"github.com/lacylights/ledshow/internal/output"
	"github.com/lacylights/ledshow/internal/render"
	"github.com/lacylights/ledshow/internal/scene"
)

// defaultFPS governs the frame loop before any show is loaded, or if the
// active scene declares a non-positive fps.
const defaultFPS = 60

// FrameLoop is the engine's single writer: it drains queued control
// commands, advances segment motion, composes the frame, blends any
// in-progress dissolve, applies master brightness, and fans the result
// out — once per tick, on one goroutine.
type FrameLoop struct {
	manager *Manager
	queue   *control.Queue
	loader  ShowLoader
	fanout  *output.Fanout
	bus     *events.Bus
	log     *zap.Logger

	ledCount int
}

// NewFrameLoop wires the pieces a frame needs: the scene manager,
// the control queue to drain, the external show loader, the output
// fan-out, and the event bus for per-frame stats.
func NewFrameLoop(manager *Manager, queue *control.Queue, loader ShowLoader, fanout *output.Fanout, bus *events.Bus, log *zap.Logger, ledCount int) *FrameLoop {
	return &FrameLoop{
		manager:  manager,
		queue:    queue,
		loader:   loader,
		fanout:   fanout,
		bus:      bus,
		log:      log,
		ledCount: ledCount,
	}
}

// Run blocks, ticking frames at the active scene's fps until ctx is
// cancelled. Timing is best-effort: time.Ticker drops ticks that fall
// behind rather than queuing a backlog, so a slow frame never causes a
// burst of catch-up frames — the next tick simply renders immediately
// against the wall clock.
func (fl *FrameLoop) Run(ctx context.Context) {
	fps := fl.currentFPS()
	ticker := time.NewTicker(periodFor(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fl.tick(now)

			if next := fl.currentFPS(); next != fps {
				fps = next
				ticker.Reset(periodFor(fps))
			}
		}
	}
}

func periodFor(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// currentFPS reads the active scene's declared frame rate, falling back
// to defaultFPS when no show is loaded or the declared rate is invalid.
func (fl *FrameLoop) currentFPS() int {
	snap := fl.manager.Snapshot()
	if snap.Set == nil {
		return defaultFPS
	}
	sc, err := snap.Set.SceneAt(snap.Active.SceneIndex)
	if err != nil || sc.FPS <= 0 {
		return defaultFPS
	}
	return sc.FPS
}

// tick renders exactly one frame: apply queued commands, advance
// motion, compose, blend, brighten, transmit, report.
func (fl *FrameLoop) tick(now time.Time) {
	started := time.Now()

	for _, cmd := range fl.queue.Drain() {
		fl.manager.Apply(cmd, now, fl.loader)
	}

	snap := fl.manager.Snapshot()
	if snap.Set == nil {
		return
	}

	sc, eff, pal, err := snap.Active.Resolve(snap.Set)
	if err != nil {
		fl.log.Warn("playback: active selection invalid", zap.Error(err))
		return
	}

	fps := sc.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	ledCount := sc.LEDCount
	if ledCount <= 0 {
		ledCount = fl.ledCount
	}
	speedScale := float64(snap.SpeedPct) / 100.0

	if !snap.Paused {
		advance(eff.Segments, float64(fps), speedScale)
	}
	buffer := render.Compose(ledCount, eff, pal, now)

	dissolving := snap.Dissolve.Running()
	if dissolving {
		buffer = fl.blendDissolve(snap, buffer, ledCount, float64(fps), speedScale, now)
	}

	for i := range buffer {
		buffer[i] = colormath.ApplyMasterBrightness(buffer[i], snap.Brightness)
	}

	if !snap.Paused {
		fl.fanout.Send(buffer)
	}

	fl.bus.Publish(events.TopicFrameStats, events.FrameStats{
		FrameDurationMs: float64(time.Since(started).Microseconds()) / 1000.0,
		BudgetMs:        1000.0 / float64(fps),
		Dissolving:      dissolving,
		Paused:          snap.Paused,
	})
}

// blendDissolve composes the dissolve target's frame and merges it with
// the already-composed active frame per the active dissolve pattern,
// completing the dissolve on the manager once every LED has settled.
func (fl *FrameLoop) blendDissolve(snap Snapshot, active []colormath.RGB, ledCount int, fps, speedScale float64, now time.Time) []colormath.RGB {
	_, targetEff, targetPal, err := snap.Dissolve.Target.Resolve(snap.Set)
	if err != nil {
		fl.log.Warn("playback: dissolve target selection invalid",
			zap.String("session_id", snap.Dissolve.SessionID), zap.Error(err))
		return active
	}

	if !snap.Paused {
		advance(targetEff.Segments, fps, speedScale)
	}
	target := render.Compose(ledCount, targetEff, targetPal, now)

	elapsed := snap.Dissolve.ElapsedMs(now)
	merged, complete := dissolve.Merge(snap.Dissolve.Pattern, active, target, elapsed)
	if complete {
		fl.manager.CompleteDissolve()
	}
	return merged
}

func advance(segments []*scene.Segment, fps, speedScale float64) {
	for _, seg := range segments {
		movement.Step(&seg.Motion, fps, seg.MoveRange, seg.IsEdgeReflect, speedScale)
	}
}
