package spectrum

import "strconv"

// Axis names one of the two chart axes.
type Axis int

const (
	AxisX Axis = iota // time of day, in seconds from midnight
	AxisY             // intensity
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// Scale answers coordinate queries for the current axis scale.
//
// The rendering collaborator owns the actual scale (plot area, zoom), so the
// mapper asks it rather than re-deriving the projection.
type Scale interface {
	// PixelForValue projects a domain value onto the given axis.
	PixelForValue(axis Axis, value float64) float64

	// ValueForPixel is the inverse of PixelForValue.
	ValueForPixel(axis Axis, pixel float64) float64
}

// Mapper converts between pixel positions and (time, intensity) values.
//
// It is a pure function of the Scale it wraps.
type Mapper struct {
	scale Scale
}

func NewMapper(scale Scale) Mapper {
	return Mapper{scale: scale}
}

// PixelToDomain inverse-projects a pixel position.
//
// No clamping is applied: pixels outside the plot area extrapolate.
func (m Mapper) PixelToDomain(px, py float64) (ClockTime, float64) {
	t := ClockTimeFromSeconds(m.scale.ValueForPixel(AxisX, px))
	v := m.scale.ValueForPixel(AxisY, py)
	return t, v
}

// DomainToPixel projects a (time, intensity) pair onto the plot.
func (m Mapper) DomainToPixel(t ClockTime, v float64) (float64, float64) {
	return m.scale.PixelForValue(AxisX, t.Seconds()),
		m.scale.PixelForValue(AxisY, v)
}

// FormatTime formats a time value for tick labels, tooltips and storage.
func FormatTime(t ClockTime) string {
	return t.String()
}

// FormatIntensity formats an intensity with exactly two decimals.
func FormatIntensity(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Rect is a plot area in pixel space; Y grows downward.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// LinearScale projects both axes linearly onto a plot rectangle.
type LinearScale struct {
	Area       Rect
	XMin, XMax float64
	YMin, YMax float64
}

// NewLinearScale builds a scale for the given area, time window (seconds)
// and intensity range.
func NewLinearScale(area Rect, xMin, xMax, yMin, yMax float64) LinearScale {
	return LinearScale{
		Area: area,
		XMin: xMin,
		XMax: xMax,
		YMin: yMin,
		YMax: yMax,
	}
}

// PixelForValue implements Scale.
func (s LinearScale) PixelForValue(axis Axis, value float64) float64 {
	switch axis {
	case AxisX:
		dx := s.XMax - s.XMin
		if dx == 0 {
			return s.Area.Left
		}
		return s.Area.Left + (value-s.XMin)/dx*s.Area.Width
	case AxisY:
		dy := s.YMax - s.YMin
		if dy == 0 {
			return s.Area.Top + s.Area.Height
		}
		return s.Area.Top + s.Area.Height - (value-s.YMin)/dy*s.Area.Height
	default:
		return 0
	}
}

// ValueForPixel implements Scale.
func (s LinearScale) ValueForPixel(axis Axis, pixel float64) float64 {
	switch axis {
	case AxisX:
		if s.Area.Width == 0 {
			return s.XMin
		}
		return s.XMin + (pixel-s.Area.Left)/s.Area.Width*(s.XMax-s.XMin)
	case AxisY:
		if s.Area.Height == 0 {
			return s.YMin
		}
		return s.YMin + (s.Area.Top+s.Area.Height-pixel)/s.Area.Height*(s.YMax-s.YMin)
	default:
		return 0
	}
}

// Contains reports whether the pixel lies within the plot area.
func (s LinearScale) Contains(px, py float64) bool {
	return px >= s.Area.Left && px <= s.Area.Left+s.Area.Width &&
		py >= s.Area.Top && py <= s.Area.Top+s.Area.Height
}
