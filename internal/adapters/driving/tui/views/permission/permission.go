// Package permission provides the dialog asking for contacts access.
package permission

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
)

// View is a modal yes/no dialog.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	question string
	width    int
	height   int
}

// NewView creates a new permission dialog.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, width: 80, height: 24}
}

// SetQuestion sets the text shown in the dialog.
func (v *View) SetQuestion(question string) {
	v.question = question
}

// Question returns the text shown in the dialog.
func (v *View) Question() string {
	return v.question
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update turns allow/deny keys into PermissionAnswered.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Allow):
			return v, answer(true)
		case keymap.Matches(msg.String(), v.keymap.Deny):
			return v, answer(false)
		}
	}
	return v, nil
}

func answer(allowed bool) tea.Cmd {
	return func() tea.Msg {
		return messages.PermissionAnswered{Allowed: allowed}
	}
}

// View renders the dialog centred on screen.
func (v *View) View() string {
	allow := v.keymap.Allow.Help()
	deny := v.keymap.Deny.Help()

	body := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Permission"),
		"",
		v.styles.Normal.Render(v.question),
		"",
		v.styles.Muted.Render(fmt.Sprintf("[%s] %s    [%s] %s", allow.Key, allow.Desc, deny.Key, deny.Desc)),
	)

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, v.styles.Dialog.Render(body))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
