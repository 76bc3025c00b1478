package editor_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/spectra/internal/editor"
	"github.com/wandb/spectra/internal/spectrum"
)

func frameWith(points ...spectrum.Point) spectrum.Frame {
	sp := spectrum.Spectrum{Title: "morning", Color: spectrum.MustParseColor("#E281FE")}
	return spectrum.Frame{
		Series: []spectrum.Series{{
			Spectrum: sp,
			Dataset: spectrum.Dataset{
				Label:    sp.Title,
				Points:   points,
				Stroke:   sp.Color,
				Fill:     sp.Color,
				ShowLine: true,
			},
		}},
		Axis: spectrum.DefaultAxisConfig(),
	}
}

func cellOf(c *editor.Chart, p spectrum.Point) (float64, float64) {
	x := c.PixelForValue(spectrum.AxisX, p.X.Seconds())
	y := c.PixelForValue(spectrum.AxisY, p.Y)
	return math.Round(x), math.Round(y)
}

func TestChart_ScaleFollowsLinechartGeometry(t *testing.T) {
	c := editor.NewChart(80, 20, 1)

	origin := c.Origin()
	area := c.TestScale().Area
	assert.Equal(t, float64(origin.X+1), area.Left)
	assert.Equal(t, 0.0, area.Top)
	assert.Equal(t, float64(c.GraphWidth()-1), area.Width)
	assert.Equal(t, float64(c.GraphHeight()-1), area.Height)

	// Midnight sits on the first plot column, intensity 0 on the last plot row.
	assert.Equal(t, area.Left, c.PixelForValue(spectrum.AxisX, 0))
	assert.Equal(t, area.Top+area.Height, c.PixelForValue(spectrum.AxisY, 0))
}

func TestChart_ScaleRoundTrip(t *testing.T) {
	c := editor.NewChart(100, 30, 1)

	for _, px := range []float64{5, 17.5, 60} {
		v := c.ValueForPixel(spectrum.AxisX, px)
		assert.InDelta(t, px, c.PixelForValue(spectrum.AxisX, v), 1e-9)
	}
	for _, py := range []float64{0, 9, 24} {
		v := c.ValueForPixel(spectrum.AxisY, py)
		assert.InDelta(t, py, c.PixelForValue(spectrum.AxisY, v), 1e-9)
	}
}

func TestChart_HitTest(t *testing.T) {
	c := editor.NewChart(100, 30, 1)
	noon := spectrum.NewPoint(spectrum.NewClockTime(12, 0, 0), 50)
	evening := spectrum.NewPoint(spectrum.NewClockTime(18, 0, 0), 50)
	c.Render(frameWith(noon, evening), spectrum.RenderImmediate)

	x, y := cellOf(c, noon)
	assert.Equal(t,
		[]spectrum.ElementRef{{DatasetIndex: 0, Index: 0}},
		c.HitTest(x, y))
	assert.Equal(t,
		[]spectrum.ElementRef{{DatasetIndex: 0, Index: 0}},
		c.HitTest(x+1, y),
		"a neighbor cell is within the hit radius")

	assert.Empty(t, c.HitTest(x, y-5))
}

func TestChart_HitTest_NearestFirst(t *testing.T) {
	c := editor.NewChart(100, 30, 3)
	a := spectrum.NewPoint(spectrum.NewClockTime(12, 0, 0), 50)
	c.Render(frameWith(a), spectrum.RenderImmediate)

	x, y := cellOf(c, a)
	// A second point two columns right of the first.
	bx := c.ValueForPixel(spectrum.AxisX, x+2)
	b := spectrum.NewPoint(spectrum.ClockTimeFromSeconds(bx), 50)
	c.Render(frameWith(a, b), spectrum.RenderImmediate)

	hits := c.HitTest(x+2, y)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Index)
	assert.Equal(t, 0, hits[1].Index)
}

func TestChart_RenderWidensIntensityAxis(t *testing.T) {
	c := editor.NewChart(100, 30, 1)
	c.Render(frameWith(spectrum.NewPoint(0, 250)), spectrum.RenderImmediate)

	assert.Equal(t, 0.0, c.ViewMinY())
	assert.Equal(t, 250.0, c.ViewMaxY())
	assert.Equal(t, 1, c.Renders())
}

func TestChart_DrawsMarkers(t *testing.T) {
	c := editor.NewChart(100, 30, 1)
	c.Render(frameWith(
		spectrum.NewPoint(spectrum.NewClockTime(6, 0, 0), 20),
		spectrum.NewPoint(spectrum.NewClockTime(12, 0, 0), 80),
	), spectrum.RenderImmediate)

	view := c.View()
	assert.Equal(t, 2, strings.Count(view, "●"))
	assert.Contains(t, view, "00:00:00", "x-axis ticks are HH:MM:SS")
}

func TestChart_PendingPopup(t *testing.T) {
	c := editor.NewChart(100, 30, 1)
	p := spectrum.NewPoint(spectrum.NewClockTime(12, 0, 0), 50)
	c.Render(frameWith(p), spectrum.RenderImmediate)

	x, y := cellOf(c, p)
	c.SetOverlay(editor.Overlay{
		Pending:    spectrum.SelectedPoint{SpectrumIndex: 0, PointIndex: 0},
		AnchorX:    x,
		AnchorY:    y,
		HasPending: true,
	})

	view := c.View()
	assert.Contains(t, view, "delete 12:00:00 · 50.00? [y/n]")
	assert.Contains(t, view, "◎")
}

func TestChart_AnimatedRender(t *testing.T) {
	c := editor.NewChart(100, 30, 1)

	c.Render(frameWith(), spectrum.RenderImmediate)
	assert.False(t, c.IsAnimating())

	c.Render(frameWith(), spectrum.RenderAnimated)
	require.True(t, c.IsAnimating())
	assert.NotNil(t, c.Animate(time.Now()))

	assert.Nil(t, c.Animate(time.Now().Add(2*editor.AnimationDuration)))
	assert.False(t, c.IsAnimating())
}

func TestChart_TinyCanvasDoesNotDraw(t *testing.T) {
	c := editor.NewChart(0, 0, 1)
	c.Render(frameWith(spectrum.NewPoint(0, 10)), spectrum.RenderImmediate)

	assert.NotPanics(t, func() { _ = c.View() })
	assert.NotPanics(t, func() { c.HitTest(0, 0) })
}
