package spectrumtest

import (
	"math"
	"slices"

	"github.com/wandb/spectra/internal/spectrum"
)

// FakeRenderer is a Renderer over a LinearScale that records every frame.
//
// HitTest reports the points of the last frame within HitRadius pixels,
// nearest first.
type FakeRenderer struct {
	spectrum.LinearScale

	HitRadius float64

	Frames []spectrum.Frame
	Modes  []spectrum.RenderMode
}

var _ spectrum.Renderer = &FakeRenderer{}

// NewFakeRenderer returns a renderer with a 1000x500 pixel plot spanning
// the whole day and intensities 0 to 100.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{
		LinearScale: spectrum.NewLinearScale(
			spectrum.Rect{Left: 0, Top: 0, Width: 1000, Height: 500},
			0, spectrum.EndOfDay.Seconds(),
			0, 100,
		),
		HitRadius: 5,
	}
}

// Render implements Renderer.Render.
func (r *FakeRenderer) Render(frame spectrum.Frame, mode spectrum.RenderMode) {
	r.Frames = append(r.Frames, frame)
	r.Modes = append(r.Modes, mode)
}

// HitTest implements Renderer.HitTest.
func (r *FakeRenderer) HitTest(px, py float64) []spectrum.ElementRef {
	last, ok := r.LastFrame()
	if !ok {
		return nil
	}

	type hit struct {
		ref  spectrum.ElementRef
		dist float64
	}
	var hits []hit
	for i, s := range last.Series {
		for j, p := range s.Dataset.Points {
			x := r.PixelForValue(spectrum.AxisX, p.X.Seconds())
			y := r.PixelForValue(spectrum.AxisY, p.Y)
			if d := math.Hypot(x-px, y-py); d <= r.HitRadius {
				hits = append(hits, hit{spectrum.ElementRef{DatasetIndex: i, Index: j}, d})
			}
		}
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})

	refs := make([]spectrum.ElementRef, len(hits))
	for i, h := range hits {
		refs[i] = h.ref
	}
	return refs
}

// LastFrame returns the most recent frame.
func (r *FakeRenderer) LastFrame() (spectrum.Frame, bool) {
	if len(r.Frames) == 0 {
		return spectrum.Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// PixelOf returns the pixel a point is drawn at.
func (r *FakeRenderer) PixelOf(p spectrum.Point) (float64, float64) {
	return r.PixelForValue(spectrum.AxisX, p.X.Seconds()),
		r.PixelForValue(spectrum.AxisY, p.Y)
}
