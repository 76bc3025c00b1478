package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptTitle
	promptColor
)

// Prompt is the single-line input shown in the status bar while renaming
// or recoloring a spectrum.
type Prompt struct {
	input textinput.Model
	kind  promptKind

	// target is the spectrum being edited. Indices shift on removal, so the
	// prompt holds the stable ID.
	target uuid.UUID
}

func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.PromptStyle = promptStyle
	return &Prompt{input: ti}
}

// Begin activates the prompt for a spectrum with an initial value.
func (p *Prompt) Begin(kind promptKind, target uuid.UUID, label, initial string) tea.Cmd {
	p.kind = kind
	p.target = target
	p.input.Prompt = label + ": "
	p.input.SetValue(initial)
	p.input.CursorEnd()
	return p.input.Focus()
}

// End deactivates the prompt.
func (p *Prompt) End() {
	p.kind = promptNone
	p.input.Blur()
	p.input.Reset()
}

// IsActive reports whether the prompt is taking input.
func (p *Prompt) IsActive() bool {
	return p.kind != promptNone
}

// Kind returns what the prompt edits.
func (p *Prompt) Kind() promptKind {
	return p.kind
}

// Target returns the ID of the spectrum being edited.
func (p *Prompt) Target() uuid.UUID {
	return p.target
}

// Value returns the current input.
func (p *Prompt) Value() string {
	return p.input.Value()
}

// Update forwards a message to the text input.
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt.
func (p *Prompt) View() string {
	return p.input.View()
}
