// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
)

// PasswordInput wraps a bubbles textinput that masks what is typed.
type PasswordInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewPasswordInput creates a focused, masked input.
func NewPasswordInput(s *styles.Styles) *PasswordInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "password"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 30

	return &PasswordInput{
		textinput: ti,
		styles:    s,
		width:     30,
	}
}

// Init initialises the input.
func (p *PasswordInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. changed reports whether the value differs
// from before the message.
func (p *PasswordInput) Update(msg tea.Msg) (input *PasswordInput, cmd tea.Cmd, changed bool) {
	before := p.textinput.Value()
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd, p.textinput.Value() != before
}

// View renders the input.
func (p *PasswordInput) View() string {
	label := p.styles.Title.Render("Password: ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (p *PasswordInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PasswordInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PasswordInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PasswordInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PasswordInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PasswordInput) SetWidth(width int) {
	p.width = width
	inputWidth := width - 12
	if inputWidth < 16 {
		inputWidth = 16
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PasswordInput) Width() int {
	return p.width
}
