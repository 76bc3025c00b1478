package editor

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/spectra/internal/spectrum"
)

const (
	// Columns between x-axis ticks. Wide enough for an HH:MM:SS label.
	xTickStep = 12
	yTickStep = 2

	markerRune  = '●'
	hoverRune   = '◉'
	pendingRune = '◎'
)

// DefaultHitRadius is the distance in cells within which a point counts as
// under the pointer.
const DefaultHitRadius = 1.0

// Overlay is the transient interaction state drawn on top of the series.
type Overlay struct {
	Hovered    spectrum.ElementRef
	HasHovered bool

	// Pending is the point awaiting delete confirmation.
	Pending          spectrum.SelectedPoint
	AnchorX, AnchorY float64
	HasPending       bool
}

// Chart draws spectra on a terminal canvas.
//
// It implements spectrum.Renderer: pixels are canvas cells with x to the
// right and y downward, and the scale follows the linechart geometry.
type Chart struct {
	linechart.Model

	frame     spectrum.Frame
	scale     spectrum.LinearScale
	hitRadius float64

	overlay Overlay

	// reveal runs from 0 to 1 during an animated render.
	reveal   tween
	progress float64

	// Renders counts Render calls.
	renders int
}

func NewChart(width, height int, hitRadius float64) *Chart {
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}

	axis := spectrum.DefaultAxisConfig()
	xMin, xMax := axis.XRange()
	yMin, yMax := axis.YRange(nil)

	c := &Chart{
		Model: linechart.New(width, height, xMin, xMax, yMin, yMax,
			linechart.WithXYSteps(xTickStep, yTickStep),
			linechart.WithXLabelFormatter(formatTimeLabel),
			linechart.WithYLabelFormatter(formatIntensityLabel),
		),
		frame:     spectrum.Frame{Axis: axis},
		hitRadius: hitRadius,
		progress:  1,
	}
	c.AxisStyle = axisStyle
	c.LabelStyle = labelStyle
	c.updateScale()
	return c
}

func formatTimeLabel(_ int, v float64) string {
	return spectrum.FormatTime(spectrum.ClockTimeFromSeconds(v))
}

func formatIntensityLabel(_ int, v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// Render implements spectrum.Renderer.
func (c *Chart) Render(frame spectrum.Frame, mode spectrum.RenderMode) {
	c.frame = frame
	c.renders++

	xMin, xMax := frame.Axis.XRange()
	yMin, yMax := frame.Axis.YRange(datasetsOf(frame))
	c.SetXYRange(xMin, xMax, yMin, yMax)
	c.SetViewXYRange(xMin, xMax, yMin, yMax)
	c.updateScale()

	if mode == spectrum.RenderAnimated {
		c.reveal.begin(0, 1, time.Now())
		c.progress = 0
	}
	c.Draw()
}

// PixelForValue implements spectrum.Scale.
func (c *Chart) PixelForValue(axis spectrum.Axis, value float64) float64 {
	return c.scale.PixelForValue(axis, value)
}

// ValueForPixel implements spectrum.Scale.
func (c *Chart) ValueForPixel(axis spectrum.Axis, pixel float64) float64 {
	return c.scale.ValueForPixel(axis, pixel)
}

type hit struct {
	ref  spectrum.ElementRef
	dist float64
}

// HitTest implements spectrum.Renderer.
//
// Points are matched by the cell their marker occupies, nearest first.
// Ties keep dataset and point order.
func (c *Chart) HitTest(px, py float64) []spectrum.ElementRef {
	var hits []hit
	for di, s := range c.frame.Series {
		for pi, p := range s.Dataset.Points {
			cell := c.cellOf(p)
			d := math.Hypot(float64(cell.X)-px, float64(cell.Y)-py)
			if d <= c.hitRadius {
				hits = append(hits, hit{
					ref:  spectrum.ElementRef{DatasetIndex: di, Index: pi},
					dist: d,
				})
			}
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(a.dist, b.dist)
	})

	refs := make([]spectrum.ElementRef, len(hits))
	for i, h := range hits {
		refs[i] = h.ref
	}
	return refs
}

// Resize changes the canvas size and redraws.
func (c *Chart) Resize(width, height int) {
	c.Model.Resize(max(width, 0), max(height, 0))
	c.updateScale()
	c.Draw()
}

// SetOverlay replaces the interaction overlay and redraws.
func (c *Chart) SetOverlay(o Overlay) {
	c.overlay = o
	c.Draw()
}

// Frame returns the last rendered frame.
func (c *Chart) Frame() spectrum.Frame {
	return c.frame
}

// Renders returns the number of frames pushed to the chart.
func (c *Chart) Renders() int {
	return c.renders
}

// IsAnimating reports whether an animated render is still revealing.
func (c *Chart) IsAnimating() bool {
	return c.reveal.running
}

// Animate advances an animated render and returns a command if it continues.
func (c *Chart) Animate(now time.Time) tea.Cmd {
	if !c.reveal.running {
		return nil
	}

	progress, done := c.reveal.at(now)
	c.progress = progress
	c.Draw()
	if done {
		return nil
	}
	return animationTick(ChartAnimationMsg{})
}

// updateScale derives the pixel scale from the linechart geometry.
//
// The plot area starts one column right of the y axis and ends one row
// above the x axis, the same cells DrawRune uses.
func (c *Chart) updateScale() {
	origin := c.Origin()
	gw := max(c.GraphWidth()-1, 0)
	gh := max(c.GraphHeight()-1, 0)

	c.scale = spectrum.NewLinearScale(
		spectrum.Rect{
			Left:   float64(origin.X + 1),
			Top:    float64(origin.Y - 1 - gh),
			Width:  float64(gw),
			Height: float64(gh),
		},
		c.ViewMinX(), c.ViewMaxX(),
		c.ViewMinY(), c.ViewMaxY(),
	)
}

func (c *Chart) cellOf(p spectrum.Point) canvas.Point {
	return canvas.Point{
		X: int(math.Round(c.scale.PixelForValue(spectrum.AxisX, p.X.Seconds()))),
		Y: int(math.Round(c.scale.PixelForValue(spectrum.AxisY, p.Y))),
	}
}

// Draw repaints the axes, series and overlay.
func (c *Chart) Draw() {
	c.Clear()
	if c.GraphWidth() < 2 || c.GraphHeight() < 2 {
		return
	}
	c.DrawXYAxisAndLabel()

	// Reveal left to right while animating.
	area := c.scale.Area
	revealX := area.Left + c.progress*area.Width

	for _, s := range c.frame.Series {
		if s.Dataset.ShowLine && len(s.Dataset.Points) > 1 {
			c.drawSeriesLine(s, revealX)
		}
	}
	for di, s := range c.frame.Series {
		c.drawMarkers(di, s, revealX)
	}
	c.drawPendingPopup()
}

// drawSeriesLine connects the points of a dataset in insertion order with
// braille dots.
func (c *Chart) drawSeriesLine(s spectrum.Series, revealX float64) {
	gw, gh := c.GraphWidth(), c.GraphHeight()
	area := c.scale.Area

	// Grid coordinates equal braille dot coordinates.
	bGrid := graph.NewBrailleGrid(gw, gh, 0, float64(2*gw-1), 0, float64(4*gh-1))

	dotOf := func(p spectrum.Point) canvas.Point {
		cell := c.cellOf(p)
		cx := float64(cell.X) - area.Left
		cy := float64(cell.Y) - area.Top
		return bGrid.GridPoint(canvas.Float64Point{
			X: cx*2 + 0.5,
			Y: (float64(gh-1)-cy)*4 + 1.5,
		})
	}

	maxDotX := int((revealX - area.Left) * 2)
	pts := s.Dataset.Points
	for i := 1; i < len(pts); i++ {
		for _, d := range graph.GetLinePoints(dotOf(pts[i-1]), dotOf(pts[i])) {
			if d.X < 0 || d.Y < 0 || d.X >= 2*gw || d.Y >= 4*gh || d.X > maxDotX+1 {
				continue
			}
			bGrid.Set(d)
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Dataset.Stroke))
	graph.DrawBraillePatterns(&c.Canvas,
		canvas.Point{X: int(area.Left), Y: int(area.Top)},
		bGrid.BraillePatterns(), style)
}

func (c *Chart) drawMarkers(di int, s spectrum.Series, revealX float64) {
	style := markerStyle(s.Dataset.Fill)
	for pi, p := range s.Dataset.Points {
		cell := c.cellOf(p)
		if float64(cell.X) > revealX+0.5 || !c.insidePlot(cell) {
			continue
		}

		r := markerRune
		ref := spectrum.ElementRef{DatasetIndex: di, Index: pi}
		sel := spectrum.SelectedPoint{SpectrumIndex: di, PointIndex: pi}
		switch {
		case c.overlay.HasPending && c.overlay.Pending == sel:
			r = pendingRune
		case c.overlay.HasHovered && c.overlay.Hovered == ref:
			r = hoverRune
		}
		c.Canvas.SetRuneWithStyle(cell, r, style)
	}
}

func (c *Chart) insidePlot(p canvas.Point) bool {
	a := c.scale.Area
	return float64(p.X) >= a.Left && float64(p.X) <= a.Left+a.Width &&
		float64(p.Y) >= a.Top && float64(p.Y) <= a.Top+a.Height
}

// markerStyle colors a marker; dark fills get a light backdrop.
func markerStyle(fill spectrum.Color) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fill))
	if !fill.IsLight() {
		style = style.Background(darkMarkerBackground)
	}
	return style
}

// drawPendingPopup draws the delete confirmation next to its anchor.
func (c *Chart) drawPendingPopup() {
	if !c.overlay.HasPending {
		return
	}

	text := " delete point? [y/n] "
	sel := c.overlay.Pending
	fill := spectrum.White
	if p, ok := c.pointAt(sel); ok {
		text = fmt.Sprintf(" delete %s · %s? [y/n] ",
			spectrum.FormatTime(p.X), spectrum.FormatIntensity(p.Y))
		fill = c.frame.Series[sel.SpectrumIndex].Dataset.Fill
	}

	fg := lipgloss.Color("#000000")
	if !fill.IsLight() {
		fg = lipgloss.Color("#ffffff")
	}
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(lipgloss.Color(fill)).
		Bold(true)

	w := len([]rune(text))
	x := int(math.Round(c.overlay.AnchorX)) - w/2
	x = max(0, min(x, c.Canvas.Width()-w))
	y := int(math.Round(c.overlay.AnchorY)) - 1
	if y < 0 {
		y = int(math.Round(c.overlay.AnchorY)) + 1
	}
	c.Canvas.SetStringWithStyle(canvas.Point{X: x, Y: y}, text, style)
}

func (c *Chart) pointAt(sel spectrum.SelectedPoint) (spectrum.Point, bool) {
	if sel.SpectrumIndex < 0 || sel.SpectrumIndex >= len(c.frame.Series) {
		return spectrum.Point{}, false
	}
	pts := c.frame.Series[sel.SpectrumIndex].Dataset.Points
	if sel.PointIndex < 0 || sel.PointIndex >= len(pts) {
		return spectrum.Point{}, false
	}
	return pts[sel.PointIndex], true
}

func datasetsOf(frame spectrum.Frame) []spectrum.Dataset {
	ds := make([]spectrum.Dataset, len(frame.Series))
	for i, s := range frame.Series {
		ds[i] = s.Dataset
	}
	return ds
}
