package editor

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	StatusBarHeight = 1
	HeaderHeight    = 1
	MinChartWidth   = 30
	MinChartHeight  = 8

	// chartPaddingX is the blank column between the sidebar and the chart.
	chartPaddingX = 1
)

// Sidebar constants
const (
	SidebarWidthRatio = 0.25
	SidebarMinWidth   = 24
	SidebarMaxWidth   = 40

	// sidebarContentPadding covers the padding and the right border.
	sidebarContentPadding = 3
)

// AnimationDuration is the length of sidebar and chart transitions.
const AnimationDuration = 150 * time.Millisecond

// Brand color used for headings.
const accentColor = lipgloss.Color("#FFCF4F")

// defaultPalette is cycled through by the recolor key.
var defaultPalette = []string{
	"#e281fe",
	"#ed9fbb",
	"#f6b784",
	"#ffcf4f",
	"#7ed8a4",
	"#6bb8f0",
	"#ffffff",
	"#000000",
}

// Chart styles
var (
	axisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // gray

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // light gray

	// Backdrop for markers of dark spectra, so a black curve stays visible
	// on a dark terminal.
	darkMarkerBackground = lipgloss.Color("245")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#2B3038"}).
			Background(lipgloss.AdaptiveColor{Light: "#4ECDC4", Dark: "#E1F7FA"})

	statusErrorStyle = statusBarStyle.
				Foreground(lipgloss.Color("#B3261E"))
)

// Sidebar styles
var (
	sidebarStyle        = lipgloss.NewStyle().Padding(0, 1)
	sidebarBorderStyle  = lipgloss.NewStyle().Border(lipgloss.Border{Right: "│"}).BorderForeground(lipgloss.Color("238"))
	sidebarHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	sidebarItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sidebarMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sidebarSelectedItem = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
)

// Prompt styles
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Bold(true)
)

// Help screen styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			PaddingRight(3)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				MarginTop(1)

	helpContentStyle = lipgloss.NewStyle().
				MarginLeft(2).
				MarginTop(1)
)
