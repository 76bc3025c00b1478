package spectrum

import (
	"time"

	"github.com/wandb/spectra/internal/observability"
)

// SessionParams configures a Session.
type SessionParams struct {
	Logger *observability.CoreLogger

	// SnapStep is the rounding applied to dragged times.
	SnapStep time.Duration

	// DragThreshold is the press-to-drag distance in pixels.
	DragThreshold float64

	// Axis is the fixed axis window. Nil means DefaultAxisConfig.
	Axis *AxisConfig
}

// Session owns the model of one editing view.
//
// It wires the registry, store, mapper, controller and render adapter
// together and applies the redraw policy to spectrum operations.
type Session struct {
	logger *observability.CoreLogger

	store      *Store
	registry   *Registry
	adapter    *RenderAdapter
	controller *Controller

	closed bool
}

// NewSession builds a session around a renderer and draws the first frame.
func NewSession(renderer Renderer, params SessionParams) *Session {
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	axis := DefaultAxisConfig()
	if params.Axis != nil {
		axis = *params.Axis
	}

	store := NewStore()
	registry := NewRegistry(store)
	adapter := NewRenderAdapter(renderer, registry, store, axis)
	controller := NewController(ControllerParams{
		Store:         store,
		Registry:      registry,
		Mapper:        NewMapper(renderer),
		Adapter:       adapter,
		Logger:        params.Logger,
		SnapStep:      params.SnapStep,
		DragThreshold: params.DragThreshold,
		Axis:          axis,
	})

	s := &Session{
		logger:     params.Logger,
		store:      store,
		registry:   registry,
		adapter:    adapter,
		controller: controller,
	}
	adapter.Redraw(RenderImmediate)
	return s
}

// Controller returns the pointer interaction controller.
func (s *Session) Controller() *Controller {
	return s.controller
}

// AddSpectrum appends and selects a new spectrum.
func (s *Session) AddSpectrum() (int, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	idx := s.registry.AddSpectrum()
	s.logger.Debug("session: added spectrum", "index", idx)
	s.adapter.Redraw(RenderAnimated)
	return idx, nil
}

// RemoveSpectrum removes a spectrum and its points.
//
// Any gesture in progress is aborted first, since point references held by
// the controller may shift. A refused removal leaves the gesture alone.
func (s *Session) RemoveSpectrum(index int) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.registry.CanRemove(index); err != nil {
		return err
	}
	s.controller.Reset()
	if err := s.registry.RemoveSpectrum(index); err != nil {
		return err
	}
	s.logger.Debug("session: removed spectrum", "index", index)
	s.adapter.Redraw(RenderImmediate)
	return nil
}

// SelectSpectrum chooses the spectrum new points are added to.
//
// Selection is not drawn on the chart, so nothing is redrawn.
func (s *Session) SelectSpectrum(index int) error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.registry.SelectSpectrum(index)
}

// UpdateColor recolors a spectrum.
func (s *Session) UpdateColor(index int, c Color) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.registry.UpdateColor(index, c); err != nil {
		return err
	}
	s.adapter.Redraw(RenderImmediate)
	return nil
}

// UpdateTitle renames a spectrum.
func (s *Session) UpdateTitle(index int, title string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.registry.UpdateTitle(index, title); err != nil {
		return err
	}
	s.adapter.Redraw(RenderImmediate)
	return nil
}

// Redraw pushes the current state to the renderer again.
func (s *Session) Redraw(mode RenderMode) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.adapter.Redraw(mode)
	return nil
}

// SetSnapStep changes the rounding applied to dragged times.
func (s *Session) SetSnapStep(step time.Duration) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.controller.SetSnapStep(step)
	return nil
}

// Spectrum returns the spectrum at index.
func (s *Session) Spectrum(index int) (Spectrum, error) {
	return s.registry.Spectrum(index)
}

// Spectra returns a copy of the spectra in order.
func (s *Session) Spectra() []Spectrum {
	return s.registry.Spectra()
}

// Datasets returns a deep copy of the datasets in order.
func (s *Session) Datasets() []Dataset {
	return s.store.Datasets()
}

// SelectedIndex returns the selected spectrum index.
func (s *Session) SelectedIndex() int {
	idx, _ := s.registry.Selected()
	return idx
}

// Frame returns a snapshot of the current state.
func (s *Session) Frame() Frame {
	return s.adapter.Frame()
}

// Close detaches the renderer. Later operations return ErrSessionClosed.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.controller.detach()
	s.adapter.detach()
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}
