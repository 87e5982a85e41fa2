package playback

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/engineerr"
	"github.com/lacylights/ledshow/internal/events"
	"github.com/lacylights/ledshow/internal/scene"
)

func newTestManager() *Manager {
	return New(zap.NewNop(), events.New())
}

func testSet() *scene.Set {
	now := time.Now()
	return &scene.Set{
		Scenes: []scene.Scene{
			{
				ID:       0,
				LEDCount: 10,
				FPS:      30,
				Palettes: []scene.Palette{{}},
				Effects: []scene.Effect{
					{ID: 0, Segments: []*scene.Segment{scene.NewSegment(0, now)}},
				},
			},
			{
				ID:       1,
				LEDCount: 10,
				FPS:      30,
				Palettes: []scene.Palette{{}},
				Effects: []scene.Effect{
					{ID: 0, Segments: []*scene.Segment{scene.NewSegment(0, now)}},
				},
			},
		},
	}
}

func TestLoadShowResetsActiveAndPending(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())

	if m.active != (scene.Selection{SceneIndex: 0}) {
		t.Fatalf("active = %+v, want zero selection", m.active)
	}
	if m.pending != m.active {
		t.Fatalf("pending = %+v, want %+v", m.pending, m.active)
	}
}

func TestCacheSceneRejectsOutOfRange(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())

	if err := m.CacheScene(5); err == nil {
		t.Fatal("expected error for out-of-range scene index")
	}
	if !engineerr.Is(m.CacheScene(5), engineerr.Lookup) {
		t.Fatal("expected a Lookup-kind error")
	}
	if err := m.CacheScene(1); err != nil {
		t.Fatalf("CacheScene(1) = %v, want nil", err)
	}
	if m.pending.SceneIndex != 1 {
		t.Fatalf("pending.SceneIndex = %d, want 1", m.pending.SceneIndex)
	}
}

func TestCacheEffectValidatesAgainstPendingScene(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())
	_ = m.CacheScene(1)

	if err := m.CacheEffect(0); err != nil {
		t.Fatalf("CacheEffect(0) = %v, want nil", err)
	}
	if err := m.CacheEffect(3); err == nil {
		t.Fatal("expected error for out-of-range effect index")
	}
}

func TestTriggerPatternNoopWhenPendingMatchesActive(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())

	m.TriggerPattern(time.Now())
	if m.dissolveState.Running() {
		t.Fatal("TriggerPattern should not start a dissolve when pending == active")
	}
}

func TestTriggerPatternStartsDissolve(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())
	_ = m.CacheScene(1)

	m.TriggerPattern(time.Now())
	if !m.dissolveState.Running() {
		t.Fatal("expected dissolve to be running")
	}
	if m.dissolveState.Source.SceneIndex != 0 || m.dissolveState.Target.SceneIndex != 1 {
		t.Fatalf("dissolve source/target = %+v/%+v, want 0/1", m.dissolveState.Source, m.dissolveState.Target)
	}
}

func TestTriggerPatternReplacesInFlightDissolve(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())
	_ = m.CacheScene(1)
	m.TriggerPattern(time.Now())

	_ = m.CacheScene(0)
	m.TriggerPattern(time.Now())

	if m.dissolveState.Source.SceneIndex != 1 {
		t.Fatalf("replaced dissolve source = %d, want 1 (the prior target)", m.dissolveState.Source.SceneIndex)
	}
}

func TestPauseResume(t *testing.T) {
	m := newTestManager()
	m.Pause()
	if !m.paused {
		t.Fatal("expected paused after Pause")
	}
	m.Resume()
	if m.paused {
		t.Fatal("expected unpaused after Resume")
	}
}

func TestSetMasterBrightnessClamps(t *testing.T) {
	m := newTestManager()
	m.SetMasterBrightness(500)
	if m.masterBrightness != 255 {
		t.Fatalf("masterBrightness = %d, want 255", m.masterBrightness)
	}
	m.SetMasterBrightness(-10)
	if m.masterBrightness != 0 {
		t.Fatalf("masterBrightness = %d, want 0", m.masterBrightness)
	}
}

func TestSetSpeedPercentClamps(t *testing.T) {
	m := newTestManager()
	m.SetSpeedPercent(2000)
	if m.speedPercent != 1023 {
		t.Fatalf("speedPercent = %d, want 1023", m.speedPercent)
	}
}

func TestSetDissolvePatternValidatesRange(t *testing.T) {
	m := newTestManager()
	m.LoadDissolveShow(&dissolve.Set{Patterns: []dissolve.Pattern{{}, {}}})

	if err := m.SetDissolvePattern(1); err != nil {
		t.Fatalf("SetDissolvePattern(1) = %v, want nil", err)
	}
	if err := m.SetDissolvePattern(9); err == nil {
		t.Fatal("expected error for out-of-range pattern index")
	}
}

func TestUpdatePaletteEntryMutatesActiveScenePalette(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())

	if err := m.UpdatePaletteEntry(0, 2, 10, 20, 30); err != nil {
		t.Fatalf("UpdatePaletteEntry = %v, want nil", err)
	}
	got := m.set.Scenes[0].Palettes[0][2]
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Fatalf("palette entry = %+v, want {10 20 30}", got)
	}
}

func TestUpdatePaletteEntryRejectsOutOfRangeColor(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())

	if err := m.UpdatePaletteEntry(0, 99, 1, 2, 3); err == nil {
		t.Fatal("expected error for out-of-range color index")
	}
}

func TestUpdatePaletteEntryIgnoresPendingScene(t *testing.T) {
	m := newTestManager()
	m.LoadShow(testSet())
	_ = m.CacheScene(1)

	if err := m.UpdatePaletteEntry(0, 0, 5, 5, 5); err != nil {
		t.Fatalf("UpdatePaletteEntry = %v, want nil", err)
	}
	if m.set.Scenes[1].Palettes[0][0].R == 5 {
		t.Fatal("palette entry should mutate the active scene, not pending")
	}
	if m.set.Scenes[0].Palettes[0][0].R != 5 {
		t.Fatal("expected active scene (0) to be mutated")
	}
}

type fakeLoader struct {
	scenes   *scene.Set
	dissolve *dissolve.Set
	err      error
}

func (f fakeLoader) LoadScenes(path string) (*scene.Set, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scenes, nil
}

func (f fakeLoader) LoadDissolvePatterns(path string) (*dissolve.Set, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dissolve, nil
}

var errLoadFailed = errors.New("load failed")
