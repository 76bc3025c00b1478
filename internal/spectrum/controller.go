package spectrum

import (
	"fmt"
	"math"
	"time"

	"github.com/wandb/spectra/internal/observability"
)

// State is a state of the pointer interaction.
type State int

const (
	// StateIdle waits for the next gesture.
	StateIdle State = iota

	// StatePressed has the button down on a point that has not moved far
	// enough to count as a drag.
	StatePressed

	// StateDragging moves a point along the time axis.
	StateDragging

	// StatePendingDelete waits for the user to confirm or cancel deleting
	// the selected point.
	StatePendingDelete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	case StatePendingDelete:
		return "pending-delete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Cursor is the pointer affordance the UI should show.
type Cursor string

const (
	CursorDefault  Cursor = "default"
	CursorPointer  Cursor = "pointer"
	CursorGrabbing Cursor = "grabbing"
)

// Outcome describes what a pointer event did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePointAdded
	OutcomePointPressed
	OutcomeDragStarted
	OutcomeDragged
	OutcomeDragEnded
	OutcomeDeletePending
	OutcomePointDeleted
	OutcomeDeleteCancelled
	OutcomeHover
)

// DefaultDragThreshold is the distance in pixels a pressed point has to
// travel before the gesture becomes a drag.
const DefaultDragThreshold = 1.0

// ControllerParams are the collaborators of a Controller.
type ControllerParams struct {
	Store    *Store
	Registry *Registry
	Mapper   Mapper
	Adapter  *RenderAdapter
	Logger   *observability.CoreLogger

	// SnapStep is the rounding applied to dragged times. Zero means
	// DefaultSnapStep.
	SnapStep time.Duration

	// DragThreshold is the press-to-drag distance in pixels. Zero means
	// DefaultDragThreshold.
	DragThreshold float64

	// Axis bounds dragged times.
	Axis AxisConfig
}

// Controller turns pointer events into store mutations.
//
// Click on empty chart area adds a point to the selected spectrum. Click on
// a point asks for delete confirmation. Press and move drags the point
// along the time axis only. Not safe for concurrent use.
type Controller struct {
	store    *Store
	registry *Registry
	mapper   Mapper
	adapter  *RenderAdapter
	logger   *observability.CoreLogger

	snapStep      time.Duration
	dragThreshold float64
	axis          AxisConfig

	state State

	// pressed is the point under the button in StatePressed and
	// StateDragging.
	pressed        ElementRef
	pressX, pressY float64

	// selected is the point awaiting delete confirmation.
	selected         SelectedPoint
	anchorX, anchorY float64

	hovered    ElementRef
	hasHovered bool

	cursor Cursor

	detached bool
}

func NewController(params ControllerParams) *Controller {
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	if params.SnapStep <= 0 {
		params.SnapStep = DefaultSnapStep
	}
	if params.DragThreshold <= 0 {
		params.DragThreshold = DefaultDragThreshold
	}

	return &Controller{
		store:         params.Store,
		registry:      params.Registry,
		mapper:        params.Mapper,
		adapter:       params.Adapter,
		logger:        params.Logger,
		snapStep:      params.SnapStep,
		dragThreshold: params.DragThreshold,
		axis:          params.Axis,
		state:         StateIdle,
		selected:      NoSelection,
		cursor:        CursorDefault,
	}
}

// PointerDown handles a button press at a pixel.
func (c *Controller) PointerDown(px, py float64) Outcome {
	if c.detached {
		return OutcomeNone
	}

	switch c.state {
	case StatePendingDelete:
		c.CancelDelete()
	case StatePressed, StateDragging:
		// A release we never saw; start over.
		c.logger.Debug("controller: pointer down during gesture", "state", c.state)
		c.Reset()
	}

	hits := c.adapter.HitTest(px, py)
	if len(hits) == 0 {
		return c.addPoint(px, py)
	}

	ref := hits[0]
	if _, err := c.store.PointAt(ref.DatasetIndex, ref.Index); err != nil {
		c.logger.CaptureError(
			fmt.Errorf("controller: hit test reported unknown point: %v", err),
			"dataset", ref.DatasetIndex,
			"index", ref.Index,
		)
		return OutcomeNone
	}

	c.state = StatePressed
	c.pressed = ref
	c.pressX, c.pressY = px, py
	return OutcomePointPressed
}

func (c *Controller) addPoint(px, py float64) Outcome {
	idx, err := c.registry.Selected()
	if err != nil {
		c.logger.CaptureError(fmt.Errorf("controller: add point: %v", err))
		return OutcomeNone
	}

	t, v := c.mapper.PixelToDomain(px, py)
	if err := c.store.AppendPoint(idx, NewPoint(t, v)); err != nil {
		c.logger.CaptureError(fmt.Errorf("controller: add point: %v", err))
		return OutcomeNone
	}
	c.logger.Debug("controller: added point",
		"spectrum", idx, "x", FormatTime(t), "y", FormatIntensity(v))

	c.adapter.Redraw(RenderImmediate)
	return OutcomePointAdded
}

// PointerMove handles pointer motion. held reports whether the primary
// button is down.
func (c *Controller) PointerMove(px, py float64, held bool) Outcome {
	if c.detached {
		return OutcomeNone
	}
	if !held {
		return c.hover(px, py)
	}

	switch c.state {
	case StatePressed:
		if math.Hypot(px-c.pressX, py-c.pressY) < c.dragThreshold {
			return OutcomeNone
		}
		c.state = StateDragging
		c.cursor = CursorGrabbing
		c.logger.Debug("controller: drag start",
			"dataset", c.pressed.DatasetIndex, "index", c.pressed.Index)
		c.dragTo(px)
		return OutcomeDragStarted
	case StateDragging:
		if !c.dragTo(px) {
			return OutcomeNone
		}
		return OutcomeDragged
	default:
		return OutcomeNone
	}
}

// dragTo moves the dragged point to the snapped time under px.
//
// Only X changes. Times are kept inside the axis window.
func (c *Controller) dragTo(px float64) bool {
	t, _ := c.mapper.PixelToDomain(px, 0)
	t = t.Round(c.snapStep)
	t = max(c.axis.XMin, min(c.axis.XMax, t))

	err := c.store.SetPointX(c.pressed.DatasetIndex, c.pressed.Index, t)
	if err != nil {
		c.logger.CaptureError(fmt.Errorf("controller: drag: %v", err))
		c.Reset()
		return false
	}

	c.adapter.Redraw(RenderImmediate)
	return true
}

func (c *Controller) hover(px, py float64) Outcome {
	hits := c.adapter.HitTest(px, py)
	c.hasHovered = len(hits) > 0
	if c.hasHovered {
		c.hovered = hits[0]
	}

	if c.state == StateDragging {
		return OutcomeNone
	}
	if c.hasHovered {
		c.cursor = CursorPointer
	} else {
		c.cursor = CursorDefault
	}
	return OutcomeHover
}

// PointerUp handles a button release at a pixel.
func (c *Controller) PointerUp(px, py float64) Outcome {
	switch c.state {
	case StatePressed:
		c.state = StatePendingDelete
		c.selected = SelectedPoint{
			SpectrumIndex: c.pressed.DatasetIndex,
			PointIndex:    c.pressed.Index,
		}
		c.anchorX, c.anchorY = px, py
		return OutcomeDeletePending
	case StateDragging:
		c.logger.Debug("controller: drag end",
			"dataset", c.pressed.DatasetIndex, "index", c.pressed.Index)
		c.state = StateIdle
		c.pressed = ElementRef{}
		c.cursor = CursorDefault
		return OutcomeDragEnded
	default:
		return OutcomeNone
	}
}

// ConfirmDelete removes the point awaiting confirmation.
//
// An invalid selection is logged and the controller returns to idle
// regardless.
func (c *Controller) ConfirmDelete() Outcome {
	if c.state != StatePendingDelete {
		return OutcomeNone
	}

	sel := c.selected
	err := c.store.RemovePointAt(sel.SpectrumIndex, sel.PointIndex)
	c.clearSelection()
	c.clearHover()
	c.state = StateIdle

	if err != nil {
		c.logger.CaptureError(
			fmt.Errorf("controller: confirm delete: %v", err),
			"spectrum", sel.SpectrumIndex,
			"point", sel.PointIndex,
		)
		return OutcomeNone
	}

	c.adapter.Redraw(RenderImmediate)
	return OutcomePointDeleted
}

// CancelDelete dismisses the delete confirmation without changes.
func (c *Controller) CancelDelete() Outcome {
	if c.state != StatePendingDelete {
		return OutcomeNone
	}
	c.clearSelection()
	c.state = StateIdle
	return OutcomeDeleteCancelled
}

// Reset aborts any gesture in progress.
func (c *Controller) Reset() {
	c.state = StateIdle
	c.pressed = ElementRef{}
	c.clearHover()
	c.clearSelection()
}

// clearHover forgets the hovered point. Point indices after a removal no
// longer address the same points, so the next motion event re-resolves it.
func (c *Controller) clearHover() {
	c.hovered = ElementRef{}
	c.hasHovered = false
	c.cursor = CursorDefault
}

// SetSnapStep changes the rounding applied to dragged times.
//
// A non-positive step restores DefaultSnapStep.
func (c *Controller) SetSnapStep(step time.Duration) {
	if step <= 0 {
		step = DefaultSnapStep
	}
	c.snapStep = step
}

// SnapStep returns the rounding applied to dragged times.
func (c *Controller) SnapStep() time.Duration {
	return c.snapStep
}

// detach stops the controller from reacting to further events.
func (c *Controller) detach() {
	c.Reset()
	c.detached = true
}

func (c *Controller) clearSelection() {
	c.selected = NoSelection
	c.anchorX, c.anchorY = 0, 0
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// SelectedPoint returns the point awaiting delete confirmation, or
// NoSelection.
func (c *Controller) SelectedPoint() SelectedPoint {
	return c.selected
}

// Cursor returns the cursor affordance for the last event.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// Anchor returns the pixel the delete confirmation is positioned at.
func (c *Controller) Anchor() (x, y float64, ok bool) {
	if c.state != StatePendingDelete {
		return 0, 0, false
	}
	return c.anchorX, c.anchorY, true
}

// DraggedPoint returns the point under the button while pressed or dragging.
func (c *Controller) DraggedPoint() (ElementRef, bool) {
	if c.state != StatePressed && c.state != StateDragging {
		return ElementRef{}, false
	}
	return c.pressed, true
}

// Hovered returns the point under the pointer after the last hover.
func (c *Controller) Hovered() (ElementRef, bool) {
	return c.hovered, c.hasHovered
}
