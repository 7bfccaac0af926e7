// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateWaiting  State = "waiting"
	StateOpen     State = "open"
	StatePrompt   State = "prompt"
	StateError    State = "error"
	StateHelp     State = "help"
	StateLoggedIn State = "logged-in"
)

// Bar displays session status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	sessionID string
	seq       uint64
	simulated bool
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateWaiting,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var label string
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StatePrompt:
		return s.styles.Warning.Render("Permission requested")
	case StateOpen:
		label = s.styles.Success.Render("Ready to log in")
	case StateLoggedIn:
		label = s.styles.Success.Render("Logged in")
	default:
		label = s.styles.Muted.Render("Waiting")
	}

	if s.message != "" {
		label += s.styles.Muted.Render(" · " + s.message)
	}
	if s.sessionID != "" {
		label += s.styles.Muted.Render(fmt.Sprintf(" [%s #%d]", shortID(s.sessionID), s.seq))
	}
	return label
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StatePrompt:
		bindings = s.keymap.DialogHelp()
	case StateHelp:
		bindings = []key.Binding{s.keymap.Back, s.keymap.Quit}
	default:
		bindings = s.keymap.ShortHelp()
		if s.simulated {
			bindings = append(s.keymap.SensorHelp(), bindings...)
		}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetSession records the session and snapshot sequence being shown.
func (s *Bar) SetSession(id string, seq uint64) {
	s.sessionID = id
	s.seq = seq
}

// Seq returns the last snapshot sequence shown.
func (s *Bar) Seq() uint64 {
	return s.seq
}

// SetSimulated toggles the sensor key hints.
func (s *Bar) SetSimulated(simulated bool) {
	s.simulated = simulated
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its waiting state.
func (s *Bar) Clear() {
	s.state = StateWaiting
	s.message = ""
}
