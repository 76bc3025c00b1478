package editor

import (
	"errors"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/wandb/spectra/internal/spectrum"
)

// handleKeyMsg dispatches key presses through the key map, or to the
// prompt while it is active.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.prompt.IsActive() {
		return m.handlePromptKey(msg)
	}
	if handler, ok := m.keyMap[normalizeKey(msg.String())]; ok {
		return handler(m, msg)
	}
	return nil
}

func (m *Model) handleQuit(tea.KeyMsg) tea.Cmd {
	m.logger.Debug("model: quit requested")
	m.session.Close()
	return tea.Quit
}

func (m *Model) handleToggleSidebar(tea.KeyMsg) tea.Cmd {
	m.sidebar.Toggle()
	if err := m.config.SetSidebarVisible(m.sidebar.animState.IsExpanding()); err != nil {
		m.logger.Error("model: failed to save sidebar state", "err", err)
	}
	return animationTick(SidebarAnimationMsg{})
}

func (m *Model) handleAddSpectrum(tea.KeyMsg) tea.Cmd {
	idx, err := m.session.AddSpectrum()
	if err != nil {
		return m.setStatus(true, "Cannot add spectrum: %v", err)
	}
	m.syncSidebar()
	m.syncOverlay()

	cmds := []tea.Cmd{m.setStatus(false, "Added spectrum %d", idx+1)}
	if m.chart.IsAnimating() {
		cmds = append(cmds, animationTick(ChartAnimationMsg{}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleRemoveSpectrum(tea.KeyMsg) tea.Cmd {
	idx := m.session.SelectedIndex()
	err := m.session.RemoveSpectrum(idx)
	m.syncOverlay()
	switch {
	case errors.Is(err, spectrum.ErrLastSpectrum):
		return m.setStatus(true, "Cannot remove the last spectrum")
	case err != nil:
		return m.setStatus(true, "Cannot remove spectrum: %v", err)
	}
	m.syncSidebar()
	return m.setStatus(false, "Removed spectrum %d", idx+1)
}

func (m *Model) handleSelectPrev(tea.KeyMsg) tea.Cmd {
	return m.selectRelative(-1)
}

func (m *Model) handleSelectNext(tea.KeyMsg) tea.Cmd {
	return m.selectRelative(1)
}

// selectRelative moves the selection by delta, wrapping around.
func (m *Model) selectRelative(delta int) tea.Cmd {
	n := len(m.session.Spectra())
	if n == 0 {
		return nil
	}
	idx := ((m.session.SelectedIndex()+delta)%n + n) % n
	if err := m.session.SelectSpectrum(idx); err != nil {
		return m.setStatus(true, "Cannot select spectrum: %v", err)
	}
	m.syncSidebar()
	return nil
}

// handleCycleColor recolors the selected spectrum with the palette color
// after its current one.
func (m *Model) handleCycleColor(tea.KeyMsg) tea.Cmd {
	sp, ok := m.selectedSpectrum()
	if !ok {
		return nil
	}
	palette := m.config.Palette()
	if len(palette) == 0 {
		return nil
	}
	next := palette[(slices.Index(palette, sp.Color)+1)%len(palette)]
	return m.applyColor(m.session.SelectedIndex(), string(next))
}

// snapPresets are the drag snap steps, in seconds, the snap key cycles through.
var snapPresets = []int{1, 5, 15, 30, 60, 300, 900, 3600}

// handleCycleSnap moves to the next larger snap step, wrapping to the
// smallest, and saves it.
func (m *Model) handleCycleSnap(tea.KeyMsg) tea.Cmd {
	current := m.config.Snapshot().SnapSeconds
	next := snapPresets[0]
	for _, s := range snapPresets {
		if s > current {
			next = s
			break
		}
	}

	if err := m.config.SetSnapSeconds(next); err != nil {
		m.logger.Error("model: failed to save snap step", "err", err)
	}
	step := time.Duration(next) * time.Second
	if err := m.session.SetSnapStep(step); err != nil {
		return m.setStatus(true, "Cannot change snap step: %v", err)
	}
	return m.setStatus(false, "Snap step %s", step)
}

func (m *Model) handleColorPrompt(tea.KeyMsg) tea.Cmd {
	sp, ok := m.selectedSpectrum()
	if !ok {
		return nil
	}
	return m.prompt.Begin(promptColor, sp.ID, "Color", sp.Color.String())
}

func (m *Model) handleTitlePrompt(tea.KeyMsg) tea.Cmd {
	sp, ok := m.selectedSpectrum()
	if !ok {
		return nil
	}
	return m.prompt.Begin(promptTitle, sp.ID, "Title", sp.Title)
}

func (m *Model) handleConfirmDelete(tea.KeyMsg) tea.Cmd {
	out := m.session.Controller().ConfirmDelete()
	m.syncSidebar()
	m.syncOverlay()
	if out == spectrum.OutcomePointDeleted {
		return m.setStatus(false, "Point deleted")
	}
	return nil
}

func (m *Model) handleCancelDelete(tea.KeyMsg) tea.Cmd {
	m.session.Controller().CancelDelete()
	m.syncOverlay()
	return nil
}

// handlePromptKey edits, applies or dismisses the prompt.
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitPrompt()
	case tea.KeyEsc:
		m.prompt.End()
		return nil
	case tea.KeyCtrlC:
		return m.handleQuit(msg)
	}
	return m.prompt.Update(msg)
}

func (m *Model) submitPrompt() tea.Cmd {
	kind, value := m.prompt.Kind(), m.prompt.Value()
	idx := m.indexOf(m.prompt.Target())
	m.prompt.End()

	if idx < 0 {
		return m.setStatus(true, "The spectrum no longer exists")
	}

	switch kind {
	case promptTitle:
		if err := m.session.UpdateTitle(idx, value); err != nil {
			return m.setStatus(true, "Cannot rename spectrum: %v", err)
		}
		m.syncSidebar()
		return nil
	case promptColor:
		return m.applyColor(idx, value)
	}
	return nil
}

func (m *Model) applyColor(idx int, value string) tea.Cmd {
	c, err := spectrum.ParseColor(value)
	if err != nil {
		return m.setStatus(true, "Invalid color %q", value)
	}
	if err := m.session.UpdateColor(idx, c); err != nil {
		return m.setStatus(true, "Cannot change color: %v", err)
	}
	m.syncSidebar()
	m.syncOverlay()
	return nil
}

func (m *Model) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(m.session.Spectra(), func(sp spectrum.Spectrum) bool {
		return sp.ID == id
	})
}

// handleMouseMsg translates terminal mouse events into chart cells and
// feeds them to the controller.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if m.prompt.IsActive() {
		return nil
	}

	l := m.computeLayout()
	px := float64(msg.X - l.chartX)
	py := float64(msg.Y - l.chartY)
	ctrl := m.session.Controller()

	var out spectrum.Outcome
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if msg.X < l.sidebarWidth {
			return m.handleSidebarClick(msg.Y - l.chartY)
		}
		if !m.isOverChart(l, msg.X, msg.Y) {
			return nil
		}
		out = ctrl.PointerDown(px, py)

	case tea.MouseActionMotion:
		out = ctrl.PointerMove(px, py, msg.Button == tea.MouseButtonLeft)

	case tea.MouseActionRelease:
		out = ctrl.PointerUp(px, py)
	}

	switch out {
	case spectrum.OutcomeNone:
		return nil
	case spectrum.OutcomePointAdded, spectrum.OutcomePointDeleted, spectrum.OutcomeDragEnded:
		m.syncSidebar()
	}
	m.syncOverlay()
	return nil
}

func (m *Model) isOverChart(l layout, x, y int) bool {
	return x >= l.chartX && x < l.chartX+l.chartWidth &&
		y >= l.chartY && y < l.chartY+l.chartHeight
}

// handleSidebarClick selects the spectrum listed at a sidebar row.
func (m *Model) handleSidebarClick(row int) tea.Cmd {
	idx, ok := m.sidebar.RowAt(row)
	if !ok {
		return nil
	}
	if err := m.session.SelectSpectrum(idx); err != nil {
		return m.setStatus(true, "Cannot select spectrum: %v", err)
	}
	m.syncSidebar()
	return nil
}
