// Package success provides the screen shown after a successful login.
package success

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
)

// View is the terminal state of a session.
type View struct {
	styles    *styles.Styles
	sessionID string
	width     int
	height    int
}

// NewView creates a new success view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// SetSession records which session logged in.
func (v *View) SetSession(id string) {
	v.sessionID = id
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update quits on any key.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, tea.Quit
	}
	return v, nil
}

// View renders the view.
func (v *View) View() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		v.styles.Success.Render("Logged in"),
		"",
		v.styles.Muted.Render("session "+v.sessionID),
		"",
		v.styles.Help.Render("press any key to exit"),
	)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, body)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
