package spectrum

//go:generate mockgen -destination=../spectrumtest/renderer_mock.go -package=spectrumtest github.com/wandb/spectra/internal/spectrum Renderer

// RenderMode tells the renderer whether to animate the transition.
type RenderMode int

const (
	// RenderImmediate redraws without animation. Used for point edits and
	// color changes.
	RenderImmediate RenderMode = iota

	// RenderAnimated may animate the transition. Used when spectra are added.
	RenderAnimated
)

func (m RenderMode) String() string {
	if m == RenderAnimated {
		return "animated"
	}
	return "immediate"
}

// Series pairs a spectrum with a snapshot of its dataset.
type Series struct {
	Spectrum Spectrum
	Dataset  Dataset
}

// Frame is the complete state pushed to a renderer on every redraw.
type Frame struct {
	Series []Series
	Axis   AxisConfig
}

// Renderer is the external chart collaborator.
//
// It owns the actual drawing and scale, and resolves which rendered points
// lie under a pixel.
type Renderer interface {
	Scale

	// Render replaces whatever the renderer shows with the frame.
	Render(frame Frame, mode RenderMode)

	// HitTest lists the rendered points under a pixel, best match first.
	HitTest(px, py float64) []ElementRef
}

// RenderAdapter pushes registry and store snapshots to a Renderer.
//
// It only reads from the model.
type RenderAdapter struct {
	renderer Renderer
	registry *Registry
	store    *Store
	axis     AxisConfig
}

func NewRenderAdapter(
	renderer Renderer,
	registry *Registry,
	store *Store,
	axis AxisConfig,
) *RenderAdapter {
	return &RenderAdapter{
		renderer: renderer,
		registry: registry,
		store:    store,
		axis:     axis,
	}
}

// Frame builds a snapshot of the current state.
func (a *RenderAdapter) Frame() Frame {
	spectra := a.registry.Spectra()
	datasets := a.store.Datasets()

	series := make([]Series, len(spectra))
	for i, sp := range spectra {
		series[i] = Series{
			Spectrum: sp,
			Dataset:  datasets[i],
		}
	}
	return Frame{Series: series, Axis: a.axis}
}

// Redraw pushes the current state to the renderer.
func (a *RenderAdapter) Redraw(mode RenderMode) {
	if a.renderer == nil {
		return
	}
	a.renderer.Render(a.Frame(), mode)
}

// HitTest forwards a hit test to the renderer.
func (a *RenderAdapter) HitTest(px, py float64) []ElementRef {
	if a.renderer == nil {
		return nil
	}
	return a.renderer.HitTest(px, py)
}

// detach drops the renderer; later redraws do nothing.
func (a *RenderAdapter) detach() {
	a.renderer = nil
}
