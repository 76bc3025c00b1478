//go:build race

package editor

import tea "github.com/charmbracelet/bubbletea"

func windowTitleCmd() tea.Cmd {
	return nil
}
