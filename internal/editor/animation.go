package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// animationFrame is the redraw interval while something animates.
const animationFrame = 16 * time.Millisecond

// tween eases a value between two endpoints over AnimationDuration.
type tween struct {
	from, to float64
	start    time.Time
	running  bool
}

func (tw *tween) begin(from, to float64, now time.Time) {
	tw.from, tw.to = from, to
	tw.start = now
	tw.running = true
}

// at returns the eased value at now. Once the end is reached the tween
// stops and done is true.
func (tw *tween) at(now time.Time) (v float64, done bool) {
	if !tw.running {
		return tw.to, true
	}
	t := float64(now.Sub(tw.start)) / float64(AnimationDuration)
	if t >= 1 {
		tw.running = false
		return tw.to, true
	}
	return tw.from + (tw.to-tw.from)*easeOutCubic(max(t, 0)), false
}

// easeOutCubic decelerates towards the end.
func easeOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// animationTick delivers msg after one animation frame.
func animationTick(msg tea.Msg) tea.Cmd {
	return tea.Tick(animationFrame, func(time.Time) tea.Msg { return msg })
}

// SidebarState represents the UI state of the sidebar.
type SidebarState int

const (
	SidebarCollapsed SidebarState = iota
	SidebarExpanded
	SidebarCollapsing
	SidebarExpanding
)

// AnimationState tracks the sidebar width while it opens and closes.
type AnimationState struct {
	state         SidebarState
	width         int
	expandedWidth int
	tween         tween
}

func NewAnimationState(expanded bool, expandedWidth int) *AnimationState {
	a := &AnimationState{state: SidebarCollapsed, expandedWidth: expandedWidth}
	if expanded {
		a.state = SidebarExpanded
		a.width = expandedWidth
	}
	return a
}

// Toggle starts opening a collapsed sidebar or closing an expanded one.
// Toggling mid-animation does nothing.
func (a *AnimationState) Toggle() {
	now := time.Now()
	switch a.state {
	case SidebarCollapsed:
		a.state = SidebarExpanding
		a.tween.begin(float64(a.width), float64(a.expandedWidth), now)
	case SidebarExpanded:
		a.state = SidebarCollapsing
		a.tween.begin(float64(a.width), 0, now)
	}
}

// Update advances the animation to now. It returns a command while the
// animation continues, and whether it just completed.
func (a *AnimationState) Update(now time.Time) (tea.Cmd, bool) {
	if !a.IsAnimating() {
		return nil, false
	}

	v, done := a.tween.at(now)
	a.width = int(v)
	if !done {
		return animationTick(SidebarAnimationMsg{}), false
	}

	if a.state == SidebarExpanding {
		a.state = SidebarExpanded
		a.width = a.expandedWidth
	} else {
		a.state = SidebarCollapsed
		a.width = 0
	}
	return nil, true
}

// SetExpandedWidth updates the open width; an open sidebar snaps to it.
func (a *AnimationState) SetExpandedWidth(width int) {
	a.expandedWidth = width
	switch a.state {
	case SidebarExpanded:
		a.width = width
	case SidebarExpanding:
		a.tween.to = float64(width)
	}
}

// Width returns the current width.
func (a *AnimationState) Width() int {
	return a.width
}

// State returns the current state.
func (a *AnimationState) State() SidebarState {
	return a.state
}

// IsVisible returns whether the sidebar takes up any columns.
func (a *AnimationState) IsVisible() bool {
	return a.state != SidebarCollapsed
}

// IsExpanding reports whether the sidebar is open or opening.
func (a *AnimationState) IsExpanding() bool {
	return a.state == SidebarExpanding || a.state == SidebarExpanded
}

// IsAnimating returns whether the sidebar is currently animating.
func (a *AnimationState) IsAnimating() bool {
	return a.state == SidebarExpanding || a.state == SidebarCollapsing
}
