package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding defines a key binding for a particular target type.
//
// If Handler is nil, the binding is shown in the help screen but is not
// dispatched through the key map.
type KeyBinding[T any] struct {
	Keys        []string
	Description string
	Handler     func(*T, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings (primarily for help display).
type BindingCategory[T any] struct {
	Name     string
	Bindings []KeyBinding[T]
}

// EditorKeyBindings returns the key bindings of the spectrum editor.
func EditorKeyBindings() []BindingCategory[Model] {
	return []BindingCategory[Model]{
		{
			Name: "General",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"h", "?"},
					Description: "Toggle this help screen",
				},
				{
					Keys:        []string{"q", "ctrl+c"},
					Description: "Quit",
					Handler:     (*Model).handleQuit,
				},
				{
					Keys:        []string{"["},
					Description: "Toggle spectra sidebar",
					Handler:     (*Model).handleToggleSidebar,
				},
			},
		},
		{
			Name: "Spectra",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"a"},
					Description: "Add a spectrum",
					Handler:     (*Model).handleAddSpectrum,
				},
				{
					Keys:        []string{"x", "delete"},
					Description: "Remove the selected spectrum",
					Handler:     (*Model).handleRemoveSpectrum,
				},
				{
					Keys:        []string{"up", "k", "shift+tab"},
					Description: "Select previous spectrum",
					Handler:     (*Model).handleSelectPrev,
				},
				{
					Keys:        []string{"down", "j", "tab"},
					Description: "Select next spectrum",
					Handler:     (*Model).handleSelectNext,
				},
				{
					Keys:        []string{"c"},
					Description: "Cycle color from the palette",
					Handler:     (*Model).handleCycleColor,
				},
				{
					Keys:        []string{"C", "#"},
					Description: "Enter a hex color",
					Handler:     (*Model).handleColorPrompt,
				},
				{
					Keys:        []string{"t"},
					Description: "Rename the selected spectrum",
					Handler:     (*Model).handleTitlePrompt,
				},
			},
		},
		{
			Name: "Points",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"s"},
					Description: "Cycle the drag snap step",
					Handler:     (*Model).handleCycleSnap,
				},
				{
					Keys:        []string{"y", "enter"},
					Description: "Confirm deleting the selected point",
					Handler:     (*Model).handleConfirmDelete,
				},
				{
					Keys:        []string{"n", "esc"},
					Description: "Keep the selected point",
					Handler:     (*Model).handleCancelDelete,
				},
			},
		},
		mouseCategory[Model](),
	}
}

// buildKeyMap builds a fast lookup map from key string to handler.
func buildKeyMap[T any](categories []BindingCategory[T]) map[string]func(*T, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*T, tea.KeyMsg) tea.Cmd)
	for _, category := range categories {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[normalizeKey(key)] = binding.Handler
			}
		}
	}
	return keyMap
}

// normalizeKey normalizes Bubble Tea's KeyMsg.String() into a stable key.
func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func mouseCategory[T any]() BindingCategory[T] {
	return BindingCategory[T]{
		Name: "Mouse",
		Bindings: []KeyBinding[T]{
			{
				Keys:        []string{"click"},
				Description: "Add a point to the selected spectrum",
			},
			{
				Keys:        []string{"click point"},
				Description: "Ask to delete the point",
			},
			{
				Keys:        []string{"drag point"},
				Description: "Move the point along the time axis",
			},
			{
				Keys:        []string{"click sidebar"},
				Description: "Select a spectrum",
			},
		},
	}
}
