package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/spectra/internal/spectrum"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in   string
		want spectrum.Color
	}{
		{"#ffffff", spectrum.White},
		{"#FFF", spectrum.White},
		{" #000000 ", spectrum.Black},
		{"#E281FE", "#e281fe"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := spectrum.ParseColor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, s := range []string{"", "red", "ffffff", "#ffff", "#gggggg", "#ffffff00"} {
		t.Run(s, func(t *testing.T) {
			_, err := spectrum.ParseColor(s)
			assert.ErrorIs(t, err, spectrum.ErrInvalidColor)
		})
	}
}

func TestColor_IsLight(t *testing.T) {
	assert.True(t, spectrum.White.IsLight())
	assert.False(t, spectrum.Black.IsLight())
}

func TestMustParseColor_Panics(t *testing.T) {
	assert.Panics(t, func() { spectrum.MustParseColor("nope") })
}
