// Package showfile is the external loader boundary: it turns a JSON
// show file on disk into the in-memory scene.Set and dissolve.Set the
// playback manager operates on. The wire format itself is this
// package's concern alone — the engine core never sees JSON.
package showfile

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lacylights/ledshow/internal/colormath"
	"github.com/lacylights/ledshow/internal/dimmer"
	"github.com/lacylights/ledshow/internal/dissolve"
	"github.com/lacylights/ledshow/internal/movement"
	"github.com/lacylights/ledshow/internal/scene"
)

// Loader reads show and dissolve-pattern files from disk, implementing
// playback.ShowLoader.
type Loader struct{}

type rgbDoc struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

type rangeDoc struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

type dimmerLegDoc struct {
	DurationMs   int64 `json:"duration_ms"`
	StartPercent int   `json:"start_percent"`
	EndPercent   int   `json:"end_percent"`
}

type segmentDoc struct {
	ID              int            `json:"id"`
	Color           []int          `json:"color"`
	Transparency    []float64      `json:"transparency"`
	Length          []int          `json:"length"`
	MoveSpeed       float64        `json:"move_speed"`
	MoveRange       rangeDoc       `json:"move_range"`
	EdgeReflect     bool           `json:"edge_reflect"`
	DimmerTime      []dimmerLegDoc `json:"dimmer_time"`
	InitialPosition int            `json:"initial_position"`
}

type effectDoc struct {
	ID       int          `json:"id"`
	Segments []segmentDoc `json:"segments"`
}

type sceneDoc struct {
	ID               int           `json:"id"`
	LEDCount         int           `json:"led_count"`
	FPS              int           `json:"fps"`
	CurrentEffectID  int           `json:"current_effect_id"`
	CurrentPaletteID int           `json:"current_palette_id"`
	Palettes         [][]rgbDoc    `json:"palettes"`
	Effects          []effectDoc   `json:"effects"`
}

type showDoc struct {
	Scenes  []sceneDoc `json:"scenes"`
	Current int        `json:"current_scene"`
}

type recordDoc struct {
	StartMs   int64  `json:"start_ms"`
	FadeInMs  int64  `json:"fade_in_ms"`
	HoldMs    int64  `json:"hold_ms"`
	FadeOutMs int64  `json:"fade_out_ms"`
	Curve     string `json:"curve,omitempty"`
}

type dissolveDoc struct {
	Patterns [][]recordDoc `json:"patterns"`
	Current  int           `json:"current"`
}

// LoadScenes reads and decodes a show file at path into a scene.Set.
func (Loader) LoadScenes(path string) (*scene.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc showDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	now := time.Now()
	set := &scene.Set{Current: doc.Current}
	for _, sd := range doc.Scenes {
		set.Scenes = append(set.Scenes, buildScene(sd, now))
	}
	return set, nil
}

// LoadDissolvePatterns reads and decodes a dissolve pattern file at
// path into a dissolve.Set.
func (Loader) LoadDissolvePatterns(path string) (*dissolve.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc dissolveDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	ds := &dissolve.Set{Current: doc.Current}
	for _, pd := range doc.Patterns {
		pattern := make(dissolve.Pattern, len(pd))
		for i, rd := range pd {
			pattern[i] = dissolve.Record{
				StartMs:   rd.StartMs,
				FadeInMs:  rd.FadeInMs,
				HoldMs:    rd.HoldMs,
				FadeOutMs: rd.FadeOutMs,
				Curve:     dimmer.EasingCurve(rd.Curve),
			}
		}
		ds.Patterns = append(ds.Patterns, pattern)
	}
	return ds, nil
}

func buildScene(sd sceneDoc, now time.Time) scene.Scene {
	sc := scene.Scene{
		ID:               sd.ID,
		LEDCount:         sd.LEDCount,
		FPS:              sd.FPS,
		CurrentEffectID:  sd.CurrentEffectID,
		CurrentPaletteID: sd.CurrentPaletteID,
	}

	for _, pd := range sd.Palettes {
		var pal scene.Palette
		for i := 0; i < scene.PaletteSize && i < len(pd); i++ {
			pal[i] = colorOf(pd[i])
		}
		sc.Palettes = append(sc.Palettes, pal)
	}

	for _, ed := range sd.Effects {
		effect := scene.Effect{ID: ed.ID}
		for _, segd := range ed.Segments {
			seg := scene.NewSegment(segd.ID, now)
			seg.Color = segd.Color
			seg.Transparency = segd.Transparency
			seg.Length = segd.Length
			seg.MoveSpeed = segd.MoveSpeed
			seg.MoveRange = movement.Range{Lo: segd.MoveRange.Lo, Hi: segd.MoveRange.Hi}
			seg.IsEdgeReflect = segd.EdgeReflect
			seg.DimmerTime = dimmerEnvelopeOf(segd.DimmerTime)
			seg.InitialPosition = segd.InitialPosition
			seg.Reset(now)
			effect.Segments = append(effect.Segments, seg)
		}
		sc.Effects = append(sc.Effects, effect)
	}

	return sc
}

func dimmerEnvelopeOf(legs []dimmerLegDoc) dimmer.Envelope {
	if len(legs) == 0 {
		return nil
	}
	env := make(dimmer.Envelope, len(legs))
	for i, l := range legs {
		env[i] = dimmer.Segment{
			DurationMs:   l.DurationMs,
			StartPercent: l.StartPercent,
			EndPercent:   l.EndPercent,
		}
	}
	return env
}

func colorOf(d rgbDoc) colormath.RGB {
	return colormath.RGB{R: uint8(clamp(d.R)), G: uint8(clamp(d.G)), B: uint8(clamp(d.B))}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
