package editor

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/spectra/internal/spectrum"
)

// Lines above the first spectrum row: the header and a blank line.
const sidebarHeaderLines = 2

// Sidebar lists the spectra with a color swatch and the selection marker.
type Sidebar struct {
	animState *AnimationState

	spectra  []spectrum.Spectrum
	counts   []int
	selected int
}

func NewSidebar(visible bool) *Sidebar {
	return &Sidebar{animState: NewAnimationState(visible, SidebarMinWidth)}
}

// SetSpectra replaces the listed spectra, their point counts and the
// selected index.
func (s *Sidebar) SetSpectra(spectra []spectrum.Spectrum, datasets []spectrum.Dataset, selected int) {
	s.spectra = spectra
	s.counts = make([]int, len(spectra))
	for i := range spectra {
		if i < len(datasets) {
			s.counts[i] = len(datasets[i].Points)
		}
	}
	s.selected = selected
}

// UpdateDimensions recomputes the expanded width for the terminal width.
func (s *Sidebar) UpdateDimensions(terminalWidth int) {
	w := clamp(int(float64(terminalWidth)*SidebarWidthRatio), SidebarMinWidth, SidebarMaxWidth)
	s.animState.SetExpandedWidth(w)
}

// Toggle toggles the sidebar between expanded and collapsed states.
func (s *Sidebar) Toggle() {
	s.animState.Toggle()
}

// Update advances the show/hide animation.
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	if _, ok := msg.(SidebarAnimationMsg); !ok {
		return s, nil
	}
	cmd, _ := s.animState.Update(time.Now())
	return s, cmd
}

// Width returns the current width, including the border.
func (s *Sidebar) Width() int {
	return s.animState.Width()
}

// IsVisible returns true if the sidebar is visible or animating.
func (s *Sidebar) IsVisible() bool {
	return s.animState.IsVisible()
}

// IsAnimating returns true if the sidebar is expanding or collapsing.
func (s *Sidebar) IsAnimating() bool {
	return s.animState.IsAnimating()
}

// RowAt returns the spectrum index listed at a sidebar-relative row.
func (s *Sidebar) RowAt(y int) (int, bool) {
	idx := y - sidebarHeaderLines
	if idx < 0 || idx >= len(s.spectra) {
		return 0, false
	}
	return idx, true
}

// View renders the sidebar.
func (s *Sidebar) View(height int) string {
	width := s.animState.Width()
	if width <= 0 {
		return ""
	}

	contentWidth := max(width-sidebarContentPadding, 1)
	lines := []string{sidebarHeaderStyle.Render("Spectra"), ""}
	for i, sp := range s.spectra {
		lines = append(lines, s.renderRow(i, sp, contentWidth))
	}

	content := strings.Join(lines, "\n")
	styled := sidebarStyle.
		Width(width - 1).
		Height(max(height, 1)).
		MaxWidth(width - 1).
		MaxHeight(max(height, 1)).
		Render(content)

	return sidebarBorderStyle.
		Height(max(height, 1)).
		MaxHeight(max(height, 1)).
		Render(styled)
}

func (s *Sidebar) renderRow(i int, sp spectrum.Spectrum, width int) string {
	marker := "  "
	style := sidebarItemStyle
	if i == s.selected {
		marker = "▶ "
		style = sidebarSelectedItem
	}

	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(sp.Color)).
		Background(lipgloss.Color("238")).
		Render("██")

	title := sp.Title
	if title == "" {
		title = "(untitled)"
	}

	tail := " " + strconv.Itoa(s.counts[i])
	if sp.Default {
		tail = " default" + tail
	}

	// marker + swatch + space
	room := width - 5 - len([]rune(tail))
	title = truncate(title, max(room, 1))

	return marker + swatch + " " + style.Render(title) + sidebarMutedStyle.Render(tail)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
