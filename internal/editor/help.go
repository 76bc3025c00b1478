package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wandb/spectra/internal/version"
)

// HelpModel is the scrollable key binding reference.
type HelpModel struct {
	viewport viewport.Model
	active   bool

	width, height int

	// configPath is shown so users can find the file to edit.
	configPath string
}

func NewHelp(configPath string) *HelpModel {
	return &HelpModel{
		viewport:   viewport.New(80, 20),
		configPath: configPath,
	}
}

// content renders the title, then one table of bindings per category.
func (h *HelpModel) content() string {
	blocks := []string{
		helpTitleStyle.Render("spectra: light spectrum editor"),
		helpDescStyle.Render(fmt.Sprintf("version %s · config %s", version.Version, h.configPath)),
	}
	for _, category := range EditorKeyBindings() {
		blocks = append(blocks,
			helpSectionStyle.Render(category.Name),
			bindingTable(category.Bindings))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func bindingTable[T any](bindings []KeyBinding[T]) string {
	rows := make([][]string, len(bindings))
	for i, b := range bindings {
		rows[i] = []string{strings.Join(b.Keys, ", "), b.Description}
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return helpKeyStyle
			}
			return helpDescStyle
		}).
		Rows(rows...).
		String()
}

// SetSize fits the help screen above the status bar.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = max(height-StatusBarHeight, 0)
	h.viewport.Width = width
	h.viewport.Height = h.height
	if h.active {
		h.viewport.SetContent(h.content())
	}
}

// Toggle shows or hides the help screen. It always opens at the top.
func (h *HelpModel) Toggle() {
	h.active = !h.active
	if h.active {
		h.viewport.SetContent(h.content())
		h.viewport.GotoTop()
	}
}

func (h *HelpModel) IsActive() bool {
	return h.active
}

// Update closes the help screen on its toggle keys or esc, quits on q,
// and scrolls on everything else.
func (h *HelpModel) Update(msg tea.Msg) (*HelpModel, tea.Cmd) {
	if !h.active {
		return h, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "h", "?", "esc":
			h.Toggle()
			return h, nil
		case "q", "ctrl+c":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h *HelpModel) View() string {
	if !h.active {
		return ""
	}
	return lipgloss.Place(h.width, h.height, lipgloss.Left, lipgloss.Top,
		helpContentStyle.Render(h.viewport.View()))
}
