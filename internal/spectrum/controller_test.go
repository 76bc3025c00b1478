package spectrum_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wandb/spectra/internal/observabilitytest"
	"github.com/wandb/spectra/internal/spectrum"
	"github.com/wandb/spectra/internal/spectrumtest"
)

type controllerFixture struct {
	Store      *spectrum.Store
	Registry   *spectrum.Registry
	Renderer   *spectrumtest.MockRenderer
	Controller *spectrum.Controller
}

// setupMock wires a controller to a mock renderer, with three points in
// the default spectrum.
func setupMock(t *testing.T) controllerFixture {
	t.Helper()

	store, registry := newModel(t)
	for _, x := range []string{"06:00:00", "12:00:00", "18:00:00"} {
		require.NoError(t, store.AppendPoint(0, mustPoint(t, x, 40)))
	}

	renderer := spectrumtest.NewMockRenderer(gomock.NewController(t))
	adapter := spectrum.NewRenderAdapter(renderer, registry, store, spectrum.DefaultAxisConfig())

	return controllerFixture{
		Store:    store,
		Registry: registry,
		Renderer: renderer,
		Controller: spectrum.NewController(spectrum.ControllerParams{
			Store:    store,
			Registry: registry,
			Mapper:   spectrum.NewMapper(renderer),
			Adapter:  adapter,
			Logger:   observabilitytest.NewTestLogger(t),
			Axis:     spectrum.DefaultAxisConfig(),
		}),
	}
}

// setupFake wires a session to a fake renderer.
func setupFake(t *testing.T) (*spectrum.Session, *spectrumtest.FakeRenderer) {
	t.Helper()
	renderer := spectrumtest.NewFakeRenderer()
	session := spectrum.NewSession(renderer, spectrum.SessionParams{
		Logger: observabilitytest.NewTestLogger(t),
	})
	return session, renderer
}

func TestClickOnPoint_ConfirmDeletesIt(t *testing.T) {
	f := setupMock(t)
	f.Renderer.EXPECT().
		HitTest(100.0, 200.0).
		Return([]spectrum.ElementRef{{DatasetIndex: 0, Index: 2}})

	assert.Equal(t, spectrum.OutcomePointPressed, f.Controller.PointerDown(100, 200))
	assert.Equal(t, spectrum.OutcomeDeletePending, f.Controller.PointerUp(100, 200))

	assert.Equal(t, spectrum.StatePendingDelete, f.Controller.State())
	assert.Equal(t,
		spectrum.SelectedPoint{SpectrumIndex: 0, PointIndex: 2},
		f.Controller.SelectedPoint())
	ax, ay, ok := f.Controller.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 100.0, ax)
	assert.Equal(t, 200.0, ay)

	f.Renderer.EXPECT().Render(gomock.Any(), spectrum.RenderImmediate)
	assert.Equal(t, spectrum.OutcomePointDeleted, f.Controller.ConfirmDelete())

	assert.Equal(t, spectrum.StateIdle, f.Controller.State())
	assert.True(t, f.Controller.SelectedPoint().IsNone())
	ds := f.Store.Datasets()
	require.Len(t, ds[0].Points, 2)
	assert.Equal(t, "06:00:00", ds[0].Points[0].X.String())
	assert.Equal(t, "12:00:00", ds[0].Points[1].X.String())
}

func TestClickOnPoint_OnlyFirstHitIsUsed(t *testing.T) {
	f := setupMock(t)
	f.Renderer.EXPECT().
		HitTest(gomock.Any(), gomock.Any()).
		Return([]spectrum.ElementRef{{DatasetIndex: 0, Index: 1}, {DatasetIndex: 0, Index: 0}})

	f.Controller.PointerDown(10, 10)
	f.Controller.PointerUp(10, 10)

	assert.Equal(t,
		spectrum.SelectedPoint{SpectrumIndex: 0, PointIndex: 1},
		f.Controller.SelectedPoint())
}

func TestCancelDelete_LeavesStore(t *testing.T) {
	f := setupMock(t)
	f.Renderer.EXPECT().
		HitTest(gomock.Any(), gomock.Any()).
		Return([]spectrum.ElementRef{{DatasetIndex: 0, Index: 0}})
	f.Controller.PointerDown(10, 10)
	f.Controller.PointerUp(10, 10)

	assert.Equal(t, spectrum.OutcomeDeleteCancelled, f.Controller.CancelDelete())

	assert.Equal(t, spectrum.StateIdle, f.Controller.State())
	assert.True(t, f.Controller.SelectedPoint().IsNone())
	assert.Equal(t, 3, f.Store.PointCount(0))
	_, _, ok := f.Controller.Anchor()
	assert.False(t, ok)
}

func TestConfirmDelete_StaleSelectionIsContained(t *testing.T) {
	f := setupMock(t)
	logger, logs := observabilitytest.NewRecordingTestLogger(t)
	adapter := spectrum.NewRenderAdapter(f.Renderer, f.Registry, f.Store, spectrum.DefaultAxisConfig())
	controller := spectrum.NewController(spectrum.ControllerParams{
		Store:    f.Store,
		Registry: f.Registry,
		Mapper:   spectrum.NewMapper(f.Renderer),
		Adapter:  adapter,
		Logger:   logger,
	})
	f.Renderer.EXPECT().
		HitTest(gomock.Any(), gomock.Any()).
		Return([]spectrum.ElementRef{{DatasetIndex: 0, Index: 2}})
	controller.PointerDown(10, 10)
	controller.PointerUp(10, 10)
	require.NoError(t, f.Store.RemovePointAt(0, 2))

	assert.Equal(t, spectrum.OutcomeNone, controller.ConfirmDelete())

	assert.Equal(t, spectrum.StateIdle, controller.State())
	assert.True(t, controller.SelectedPoint().IsNone())
	assert.Equal(t, 2, f.Store.PointCount(0))
	records := observabilitytest.ExtractLogs(t, logs)
	require.NotEmpty(t, records)
	last := records[len(records)-1]
	assert.Equal(t, "ERROR", last["level"])
	assert.Contains(t, last["msg"], "controller: confirm delete")
}

func TestPointerDown_UnknownHitIsIgnored(t *testing.T) {
	f := setupMock(t)
	f.Renderer.EXPECT().
		HitTest(gomock.Any(), gomock.Any()).
		Return([]spectrum.ElementRef{{DatasetIndex: 4, Index: 0}})

	assert.Equal(t, spectrum.OutcomeNone, f.Controller.PointerDown(10, 10))
	assert.Equal(t, spectrum.StateIdle, f.Controller.State())
}

func TestClickOnEmpty_AddsPointToSelectedSpectrum(t *testing.T) {
	session, renderer := setupFake(t)
	_, err := session.AddSpectrum()
	require.NoError(t, err)

	outcome := session.Controller().PointerDown(500, 250)

	assert.Equal(t, spectrum.OutcomePointAdded, outcome)
	assert.Equal(t, spectrum.StateIdle, session.Controller().State())
	ds := session.Datasets()
	assert.Empty(t, ds[0].Points)
	require.Len(t, ds[1].Points, 1)
	assert.Equal(t, "11:59:59", ds[1].Points[0].X.String())
	assert.Equal(t, 50.0, ds[1].Points[0].Y)
	assert.Equal(t, spectrum.RenderImmediate, renderer.Modes[len(renderer.Modes)-1])
}

func TestClickOnEmpty_CancelsPendingDelete(t *testing.T) {
	session, renderer := setupFake(t)
	c := session.Controller()
	c.PointerDown(500, 250)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])
	c.PointerDown(px, py)
	c.PointerUp(px, py)
	require.Equal(t, spectrum.StatePendingDelete, c.State())

	assert.Equal(t, spectrum.OutcomePointAdded, c.PointerDown(100, 100))

	assert.Equal(t, spectrum.StateIdle, c.State())
	assert.True(t, c.SelectedPoint().IsNone())
	assert.Len(t, session.Datasets()[0].Points, 2)
}

func TestDrag_ChangesOnlyX(t *testing.T) {
	session, renderer := setupFake(t)
	c := session.Controller()
	c.PointerDown(500, 250)
	before := session.Datasets()[0].Points[0]
	px, py := renderer.PixelOf(before)

	assert.Equal(t, spectrum.OutcomePointPressed, c.PointerDown(px, py))
	assert.Equal(t, spectrum.OutcomeDragStarted, c.PointerMove(px+100, py+30, true))
	assert.Equal(t, spectrum.StateDragging, c.State())
	assert.Equal(t, spectrum.CursorGrabbing, c.Cursor())
	ref, ok := c.DraggedPoint()
	assert.True(t, ok)
	assert.Equal(t, spectrum.ElementRef{DatasetIndex: 0, Index: 0}, ref)

	assert.Equal(t, spectrum.OutcomeDragged, c.PointerMove(px+120, py-40, true))
	assert.Equal(t, spectrum.OutcomeDragEnded, c.PointerUp(px+120, py-40))

	after := session.Datasets()[0].Points[0]
	assert.Equal(t, before.Y, after.Y)
	assert.Greater(t, after.X, before.X)
	assert.Equal(t, after.X, after.X.Normalize())
	assert.Equal(t, spectrum.StateIdle, c.State())
	assert.Equal(t, spectrum.CursorDefault, c.Cursor())
	assert.True(t, c.SelectedPoint().IsNone())
}

func TestDrag_BelowThresholdIsAClick(t *testing.T) {
	renderer := spectrumtest.NewFakeRenderer()
	session := spectrum.NewSession(renderer, spectrum.SessionParams{
		Logger:        observabilitytest.NewTestLogger(t),
		DragThreshold: 4,
	})
	c := session.Controller()
	c.PointerDown(500, 250)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])

	c.PointerDown(px, py)
	assert.Equal(t, spectrum.OutcomeNone, c.PointerMove(px+2, py+2, true))
	c.PointerUp(px+2, py+2)

	assert.Equal(t, spectrum.StatePendingDelete, c.State())
}

func TestDrag_ClampsToDay(t *testing.T) {
	session, renderer := setupFake(t)
	c := session.Controller()
	c.PointerDown(500, 250)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])

	c.PointerDown(px, py)
	c.PointerMove(5000, py, true)
	assert.Equal(t, spectrum.EndOfDay, session.Datasets()[0].Points[0].X)

	c.PointerMove(-5000, py, true)
	assert.Equal(t, spectrum.ClockTime(0), session.Datasets()[0].Points[0].X)
	c.PointerUp(-5000, py)
}

func TestDrag_SnapsToStep(t *testing.T) {
	renderer := spectrumtest.NewFakeRenderer()
	session := spectrum.NewSession(renderer, spectrum.SessionParams{
		Logger:   observabilitytest.NewTestLogger(t),
		SnapStep: 15 * time.Minute,
	})
	c := session.Controller()
	c.PointerDown(500, 250)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])

	c.PointerDown(px, py)
	c.PointerMove(px+37, py, true)
	c.PointerUp(px+37, py)

	x := session.Datasets()[0].Points[0].X
	assert.Zero(t, time.Duration(x)%(15*time.Minute))
}

func TestHover_SetsCursorWithoutMutation(t *testing.T) {
	session, renderer := setupFake(t)
	c := session.Controller()
	c.PointerDown(500, 250)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])
	frames := len(renderer.Frames)

	assert.Equal(t, spectrum.OutcomeHover, c.PointerMove(px, py, false))
	assert.Equal(t, spectrum.CursorPointer, c.Cursor())
	hovered, ok := c.Hovered()
	assert.True(t, ok)
	assert.Equal(t, spectrum.ElementRef{DatasetIndex: 0, Index: 0}, hovered)

	c.PointerMove(10, 10, false)
	assert.Equal(t, spectrum.CursorDefault, c.Cursor())
	_, ok = c.Hovered()
	assert.False(t, ok)

	assert.Equal(t, spectrum.StateIdle, c.State())
	assert.Len(t, renderer.Frames, frames)
	assert.Len(t, session.Datasets()[0].Points, 1)
}

func TestConfirmDelete_ForgetsHoveredPoint(t *testing.T) {
	session, renderer := setupFake(t)
	c := session.Controller()
	c.PointerDown(200, 250)
	c.PointerDown(800, 100)
	px, py := renderer.PixelOf(session.Datasets()[0].Points[0])

	c.PointerMove(px, py, false)
	require.Equal(t, spectrum.CursorPointer, c.Cursor())
	c.PointerDown(px, py)
	c.PointerUp(px, py)
	require.Equal(t, spectrum.OutcomePointDeleted, c.ConfirmDelete())

	// The remaining point shifted into the deleted index; it is not hovered.
	_, ok := c.Hovered()
	assert.False(t, ok)
	assert.Equal(t, spectrum.CursorDefault, c.Cursor())
	require.Len(t, session.Datasets()[0].Points, 1)
}

func TestPointerUp_WhenIdleDoesNothing(t *testing.T) {
	session, _ := setupFake(t)

	assert.Equal(t, spectrum.OutcomeNone, session.Controller().PointerUp(1, 1))
	assert.Equal(t, spectrum.OutcomeNone, session.Controller().ConfirmDelete())
	assert.Equal(t, spectrum.OutcomeNone, session.Controller().CancelDelete())
}
