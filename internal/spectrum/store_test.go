package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/spectra/internal/spectrum"
)

func newModel(t *testing.T) (*spectrum.Store, *spectrum.Registry) {
	t.Helper()
	store := spectrum.NewStore()
	return store, spectrum.NewRegistry(store)
}

func mustPoint(t *testing.T, x string, y float64) spectrum.Point {
	t.Helper()
	p, err := spectrum.ParsePoint(x, y)
	require.NoError(t, err)
	return p
}

func TestAppendPoint_DefaultSpectrum(t *testing.T) {
	store, registry := newModel(t)

	require.NoError(t, store.AppendPoint(0, mustPoint(t, "10:00:00", 50)))

	spectra := registry.Spectra()
	require.Len(t, spectra, 1)
	assert.Equal(t, "none", spectra[0].Title)
	assert.Equal(t, spectrum.White, spectra[0].Color)
	assert.True(t, spectra[0].Default)

	ds := store.Datasets()
	require.Len(t, ds, 1)
	assert.Equal(t,
		[]spectrum.Point{{X: spectrum.NewClockTime(10, 0, 0), Y: 50}},
		ds[0].Points)
}

func TestAppendPoint_KeepsInsertionOrder(t *testing.T) {
	store, _ := newModel(t)

	require.NoError(t, store.AppendPoint(0, mustPoint(t, "12:00:00", 1)))
	require.NoError(t, store.AppendPoint(0, mustPoint(t, "06:00:00", 2)))

	ds, err := store.Dataset(0)
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", ds.Points[0].X.String())
	assert.Equal(t, "06:00:00", ds.Points[1].X.String())
}

func TestAppendPoint_InvalidSpectrum(t *testing.T) {
	store, _ := newModel(t)

	err := store.AppendPoint(1, mustPoint(t, "10:00:00", 50))

	assert.ErrorIs(t, err, spectrum.ErrIndexOutOfRange)
	assert.Zero(t, store.PointCount(0))
}

func TestRemovePointAt(t *testing.T) {
	store, _ := newModel(t)
	require.NoError(t, store.AppendPoint(0, mustPoint(t, "10:00:00", 50)))

	require.NoError(t, store.RemovePointAt(0, 0))

	ds := store.Datasets()
	assert.Empty(t, ds[0].Points)
}

func TestRemovePointAt_InvalidIndex(t *testing.T) {
	store, _ := newModel(t)
	require.NoError(t, store.AppendPoint(0, mustPoint(t, "10:00:00", 50)))

	assert.ErrorIs(t, store.RemovePointAt(0, 1), spectrum.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RemovePointAt(0, -1), spectrum.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RemovePointAt(3, 0), spectrum.ErrIndexOutOfRange)
	assert.Equal(t, 1, store.PointCount(0))
}

func TestPointAt(t *testing.T) {
	store, _ := newModel(t)
	p := mustPoint(t, "23:15:00", 12.5)
	require.NoError(t, store.AppendPoint(0, p))

	got, err := store.PointAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = store.PointAt(0, 1)
	assert.ErrorIs(t, err, spectrum.ErrIndexOutOfRange)
}

func TestSetPointX_OnlyChangesX(t *testing.T) {
	store, _ := newModel(t)
	require.NoError(t, store.AppendPoint(0, mustPoint(t, "10:00:00", 33.3)))

	require.NoError(t, store.SetPointX(0, 0, spectrum.NewClockTime(11, 0, 0)))

	got, err := store.PointAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", got.X.String())
	assert.Equal(t, 33.3, got.Y)
}

func TestDatasets_ReturnsCopy(t *testing.T) {
	store, _ := newModel(t)
	require.NoError(t, store.AppendPoint(0, mustPoint(t, "10:00:00", 50)))

	ds := store.Datasets()
	ds[0].Points[0].Y = 99

	got, err := store.PointAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Y)
}
