package editor

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/wandb/spectra/internal/observability"
	"github.com/wandb/spectra/internal/spectrum"
)

// statusTTL is how long a transient status message stays up.
const statusTTL = 3 * time.Second

// Params configures a Model.
type Params struct {
	// Config is the editor configuration. Nil uses defaults kept in memory.
	Config *ConfigManager

	Logger *observability.CoreLogger
}

// Model is the bubbletea model of the spectrum editor.
//
// It owns one editing session. The chart is the session's renderer; mouse
// events are translated into chart cells and forwarded to the session's
// controller.
type Model struct {
	// Serializes Update against View.
	stateMu sync.RWMutex

	width, height int

	config *ConfigManager
	logger *observability.CoreLogger

	session *spectrum.Session
	chart   *Chart
	sidebar *Sidebar
	help    *HelpModel
	prompt  *Prompt

	keyMap map[string]func(*Model, tea.KeyMsg) tea.Cmd

	// Transient status line.
	status    string
	statusErr bool
	statusSeq int
}

func NewModel(params Params) *Model {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	config := params.Config
	if config == nil {
		config = NewConfigManager(afero.NewMemMapFs(), "/spectra/"+configName, logger)
	}
	cfg := config.Snapshot()

	chart := NewChart(0, 0, cfg.HitRadiusCells)
	axis := cfg.Axis()
	session := spectrum.NewSession(chart, spectrum.SessionParams{
		Logger:        logger,
		SnapStep:      cfg.SnapStep(),
		DragThreshold: cfg.DragThresholdCells,
		Axis:          &axis,
	})

	m := &Model{
		config:  config,
		logger:  logger,
		session: session,
		chart:   chart,
		sidebar: NewSidebar(cfg.SidebarVisible),
		help:    NewHelp(config.Path()),
		prompt:  NewPrompt(),
		keyMap:  buildKeyMap(EditorKeyBindings()),
	}
	m.syncSidebar()
	return m
}

// Init implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("model: Init called")
	return windowTitleCmd()
}

// Update implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logPanic("Update")
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if handled, cmd := m.handleHelp(msg); handled {
		return m, cmd
	}

	switch t := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(t)

	case tea.MouseMsg:
		return m, m.handleMouseMsg(t)

	case tea.WindowSizeMsg:
		m.width, m.height = t.Width, t.Height
		m.help.SetSize(t.Width, t.Height)
		m.sidebar.UpdateDimensions(t.Width)
		m.layoutChart()
		return m, nil

	case SidebarAnimationMsg:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(t)
		m.layoutChart()
		return m, cmd

	case ChartAnimationMsg:
		return m, m.chart.Animate(time.Now())

	case StatusExpiredMsg:
		if t.Seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil
	}
	return m, nil
}

// handleHelp centralizes help toggle and routing while active.
func (m *Model) handleHelp(msg tea.Msg) (bool, tea.Cmd) {
	// Typed text belongs to the prompt.
	if m.prompt.IsActive() {
		return false, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "h", "?":
			m.help.Toggle()
			return true, nil
		}
	}

	if m.help.IsActive() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return true, cmd
		}
	}
	return false, nil
}

// View implements tea.Model.View.
func (m *Model) View() string {
	defer m.logPanic("View")
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.help.IsActive() {
		content := lipgloss.JoinVertical(lipgloss.Left, m.help.View(), m.renderStatusBar())
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}

	l := m.computeLayout()
	chartView := lipgloss.NewStyle().PaddingLeft(chartPaddingX).Render(m.chart.View())

	body := chartView
	if sidebarView := m.sidebar.View(l.chartHeight); sidebarView != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, chartView)
	}
	body = lipgloss.Place(m.width, l.chartHeight, lipgloss.Left, lipgloss.Top, body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

// layout is the screen geometry of the editor.
type layout struct {
	sidebarWidth int

	// Chart canvas position and size in terminal cells.
	chartX, chartY          int
	chartWidth, chartHeight int
}

func (m *Model) computeLayout() layout {
	sw := m.sidebar.Width()
	cx := sw + chartPaddingX
	return layout{
		sidebarWidth: sw,
		chartX:       cx,
		chartY:       HeaderHeight,
		chartWidth:   max(m.width-cx, 0),
		chartHeight:  max(m.height-HeaderHeight-StatusBarHeight, 0),
	}
}

// layoutChart resizes the chart to the space left by the sidebar.
func (m *Model) layoutChart() {
	l := m.computeLayout()
	if m.chart.Width() == l.chartWidth && m.chart.Height() == l.chartHeight {
		return
	}
	m.chart.Resize(l.chartWidth, l.chartHeight)
}

func (m *Model) renderHeader() string {
	ctrl := m.session.Controller()
	info := fmt.Sprintf("  %s · cursor %s", ctrl.State(), ctrl.Cursor())
	header := headerStyle.Render(" spectra") + sidebarMutedStyle.Render(info)
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(header)
}

func (m *Model) renderStatusBar() string {
	style := statusBarStyle
	statusText := " "

	switch {
	case m.prompt.IsActive():
		statusText = " " + m.prompt.View()
	case m.status != "":
		statusText = " " + m.status
		if m.statusErr {
			style = statusErrorStyle
		}
	default:
		if tip := m.hoverTooltip(); tip != "" {
			statusText = " " + tip
		} else if sp, ok := m.selectedSpectrum(); ok {
			statusText = fmt.Sprintf(" Click to add a point to %s", displayTitle(sp))
		}
	}

	helpText := fmt.Sprintf("spectrum %d/%d • snap %s • h: help ",
		m.session.SelectedIndex()+1,
		len(m.session.Spectra()),
		m.config.Snapshot().SnapStep(),
	)
	rightAligned := lipgloss.PlaceHorizontal(
		max(m.width-lipgloss.Width(statusText), 0),
		lipgloss.Right,
		helpText,
	)

	return style.
		Width(m.width).
		MaxWidth(m.width).
		Render(statusText + rightAligned)
}

// hoverTooltip describes the point under the pointer: its time and its
// intensity with two decimals.
func (m *Model) hoverTooltip() string {
	ref, ok := m.session.Controller().Hovered()
	if !ok {
		return ""
	}
	frame := m.chart.Frame()
	if ref.DatasetIndex < 0 || ref.DatasetIndex >= len(frame.Series) {
		return ""
	}
	series := frame.Series[ref.DatasetIndex]
	if ref.Index < 0 || ref.Index >= len(series.Dataset.Points) {
		return ""
	}
	p := series.Dataset.Points[ref.Index]
	return fmt.Sprintf("%s • %s: %s",
		spectrum.FormatTime(p.X),
		displayTitle(series.Spectrum),
		spectrum.FormatIntensity(p.Y))
}

func displayTitle(sp spectrum.Spectrum) string {
	if sp.Title == "" {
		return "(untitled)"
	}
	return sp.Title
}

// setStatus shows a transient message and schedules its expiry.
func (m *Model) setStatus(isErr bool, format string, args ...any) tea.Cmd {
	m.statusSeq++
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr

	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// syncSidebar refreshes the sidebar from the session.
func (m *Model) syncSidebar() {
	m.sidebar.SetSpectra(
		m.session.Spectra(),
		m.session.Datasets(),
		m.session.SelectedIndex(),
	)
}

// syncOverlay pushes the controller's hover and pending delete to the chart.
func (m *Model) syncOverlay() {
	ctrl := m.session.Controller()

	var o Overlay
	o.Hovered, o.HasHovered = ctrl.Hovered()
	if x, y, ok := ctrl.Anchor(); ok {
		o.Pending = ctrl.SelectedPoint()
		o.AnchorX, o.AnchorY = x, y
		o.HasPending = true
	}
	m.chart.SetOverlay(o)
}

func (m *Model) selectedSpectrum() (spectrum.Spectrum, bool) {
	sp, err := m.session.Spectrum(m.session.SelectedIndex())
	return sp, err == nil
}

// logPanic logs panics to the core logger before re-panicking.
func (m *Model) logPanic(context string) {
	if r := recover(); r != nil {
		stackTrace := string(debug.Stack())
		m.logger.CaptureError(fmt.Errorf("PANIC in %s: %v\nStack trace:\n%s", context, r, stackTrace))

		panic(r)
	}
}
