package spectrum

import (
	"fmt"
	"time"
)

const (
	// Day is the length of the editable time window.
	Day = 24 * time.Hour

	// EndOfDay is the last representable clock second of the window.
	EndOfDay = ClockTime(Day - time.Second)
)

// ClockTime is a wall-clock time of day, stored as the offset from midnight.
//
// It carries no date or time zone; values outside [0, 24h) are legal while
// projecting, but wrap around midnight when formatted or stored.
type ClockTime time.Duration

// NewClockTime builds a ClockTime from hours, minutes and seconds.
func NewClockTime(h, m, s int) ClockTime {
	return ClockTime(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second)
}

// ParseClockTime parses a strict "HH:MM:SS" 24h string.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != len("15:04:05") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidClockTime, s, err)
	}
	return NewClockTime(t.Hour(), t.Minute(), t.Second()), nil
}

// Seconds returns the offset from midnight in (possibly fractional) seconds.
func (c ClockTime) Seconds() float64 {
	return time.Duration(c).Seconds()
}

// ClockTimeFromSeconds converts a seconds offset back into a ClockTime.
func ClockTimeFromSeconds(s float64) ClockTime {
	return ClockTime(time.Duration(s * float64(time.Second)))
}

// Normalize truncates to whole seconds and wraps into [00:00:00, 23:59:59].
func (c ClockTime) Normalize() ClockTime {
	d := time.Duration(c) % Day
	if d < 0 {
		d += Day
	}
	return ClockTime(d.Truncate(time.Second))
}

// Round rounds to the nearest multiple of step. A non-positive step
// only drops the sub-second part.
func (c ClockTime) Round(step time.Duration) ClockTime {
	if step <= 0 {
		step = time.Second
	}
	return ClockTime(time.Duration(c).Round(step))
}

// String formats the time as "HH:MM:SS", wrapping around midnight.
func (c ClockTime) String() string {
	d := time.Duration(c.Normalize())
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
