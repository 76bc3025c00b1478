package spectrum

import (
	"time"

	"github.com/google/uuid"
)

// Default presentation hints carried by every dataset.
const (
	DefaultPointRadius = 6
	DefaultBorderWidth = 1

	// DefaultSpectrumTitle is the title of the spectrum every session starts with.
	DefaultSpectrumTitle = "none"
)

// Spectrum is a named, colored light curve.
type Spectrum struct {
	// ID is a stable handle that survives index shifts caused by removals.
	ID      uuid.UUID
	Title   string
	Color   Color
	Default bool
}

func newSpectrum(title string, color Color, isDefault bool) Spectrum {
	return Spectrum{
		ID:      uuid.New(),
		Title:   title,
		Color:   color,
		Default: isDefault,
	}
}

// Point is a single (time of day, intensity) sample.
type Point struct {
	X ClockTime
	Y float64
}

// NewPoint builds a Point in its stored form: X truncated to whole seconds
// and wrapped into the day window. Y is kept as is.
func NewPoint(x ClockTime, y float64) Point {
	return Point{X: x.Normalize(), Y: y}
}

// ParsePoint builds a Point from an "HH:MM:SS" time string.
func ParsePoint(x string, y float64) (Point, error) {
	t, err := ParseClockTime(x)
	if err != nil {
		return Point{}, err
	}
	return NewPoint(t, y), nil
}

// Dataset is the ordered point sequence of one spectrum together with
// the presentation attributes the renderer needs.
type Dataset struct {
	Label       string
	Points      []Point
	Stroke      Color
	Fill        Color
	PointRadius int
	BorderWidth int
	ShowLine    bool
}

func newDataset(s Spectrum) Dataset {
	return Dataset{
		Label:       s.Title,
		Points:      []Point{},
		Stroke:      s.Color,
		Fill:        s.Color,
		PointRadius: DefaultPointRadius,
		BorderWidth: DefaultBorderWidth,
		ShowLine:    true,
	}
}

func (d Dataset) clone() Dataset {
	d.Points = append([]Point(nil), d.Points...)
	if d.Points == nil {
		d.Points = []Point{}
	}
	return d
}

// ElementRef identifies a rendered point as reported by a hit test.
type ElementRef struct {
	DatasetIndex int
	Index        int
}

// SelectedPoint identifies the point awaiting delete confirmation.
type SelectedPoint struct {
	SpectrumIndex int
	PointIndex    int
}

// NoSelection is the sentinel for "no point selected".
var NoSelection = SelectedPoint{SpectrumIndex: -1, PointIndex: -1}

// IsNone reports whether the selection is the NoSelection sentinel.
func (s SelectedPoint) IsNone() bool {
	return s == NoSelection
}

// AxisConfig is the fixed axis window of a render session.
type AxisConfig struct {
	XMin ClockTime
	XMax ClockTime

	// YSuggestedMin and YSuggestedMax bound the intensity axis unless the
	// data falls outside; data is never clamped.
	YSuggestedMin float64
	YSuggestedMax float64
	BeginAtZero   bool
}

// DefaultAxisConfig spans the whole day and suggests intensities in [0, 100].
func DefaultAxisConfig() AxisConfig {
	return AxisConfig{
		XMin:          0,
		XMax:          EndOfDay,
		YSuggestedMin: 0,
		YSuggestedMax: 100,
		BeginAtZero:   true,
	}
}

// XRange returns the time window in seconds.
func (a AxisConfig) XRange() (float64, float64) {
	return a.XMin.Seconds(), a.XMax.Seconds()
}

// YRange widens the suggested intensity range so every point is visible.
func (a AxisConfig) YRange(datasets []Dataset) (float64, float64) {
	lo, hi := a.YSuggestedMin, a.YSuggestedMax
	if a.BeginAtZero && lo > 0 {
		lo = 0
	}
	for _, ds := range datasets {
		for _, p := range ds.Points {
			lo = min(lo, p.Y)
			hi = max(hi, p.Y)
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// DefaultSnapStep is the rounding applied to dragged times.
const DefaultSnapStep = time.Second
