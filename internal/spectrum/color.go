package spectrum

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a normalized lowercase "#rrggbb" hex color.
type Color string

const (
	White Color = "#ffffff"
	Black Color = "#000000"
)

// ParseColor validates a "#rgb" or "#rrggbb" hex string and normalizes it.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != len("#rgb") && len(s) != len("#rrggbb") {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color(c.Hex()), nil
}

// MustParseColor is like ParseColor but panics on invalid input.
//
// Intended for constants and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsLight reports whether the color is light enough that dark text
// reads better on top of it.
func (c Color) IsLight() bool {
	cf, err := colorful.Hex(string(c))
	if err != nil {
		return false
	}
	_, _, l := cf.Hsl()
	return l > 0.6
}

func (c Color) String() string {
	return string(c)
}
