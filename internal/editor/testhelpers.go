// Test<API> provides a controlled interface for testing internal model state.
// These methods are only exposed for tests in the editor_test package.
package editor

import "github.com/wandb/spectra/internal/spectrum"

// TestSession returns the editing session.
func (m *Model) TestSession() *spectrum.Session {
	return m.session
}

// TestChart returns the chart renderer.
func (m *Model) TestChart() *Chart {
	return m.chart
}

// TestChartOrigin returns the terminal cell of the chart canvas's top left.
func (m *Model) TestChartOrigin() (x, y int) {
	l := m.computeLayout()
	return l.chartX, l.chartY
}

// TestStatus returns the transient status message and whether it is an error.
func (m *Model) TestStatus() (string, bool) {
	return m.status, m.statusErr
}

// TestPromptActive reports whether the input prompt is open.
func (m *Model) TestPromptActive() bool {
	return m.prompt.IsActive()
}

// TestHelpActive reports whether the help screen is shown.
func (m *Model) TestHelpActive() bool {
	return m.help.IsActive()
}

// TestSidebarVisible returns true if the sidebar is visible.
func (m *Model) TestSidebarVisible() bool {
	return m.sidebar.IsVisible()
}

// TestForceExpand forces the sidebar to its expanded width without animation.
func (s *Sidebar) TestForceExpand() {
	s.animState.state = SidebarExpanded
	s.animState.width = s.animState.expandedWidth
	s.animState.tween.running = false
}

// TestForceCollapse forces the sidebar closed without animation.
func (s *Sidebar) TestForceCollapse() {
	s.animState.state = SidebarCollapsed
	s.animState.width = 0
	s.animState.tween.running = false
}

// TestSidebar returns the sidebar.
func (m *Model) TestSidebar() *Sidebar {
	return m.sidebar
}

// TestOverlay returns the overlay last pushed to the chart.
func (c *Chart) TestOverlay() Overlay {
	return c.overlay
}

// TestScale returns the pixel scale derived from the chart geometry.
func (c *Chart) TestScale() spectrum.LinearScale {
	return c.scale
}
