// Package gate provides the login screen: the condition checklist, the
// password field and the login button.
package gate

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/components/indicator"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

const loginLabel = "[ Log in ]"

// View is the gated login screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	panel     *indicator.Panel
	password  *input.PasswordInput
	statusbar *status.Bar

	heading   float64
	simulated bool
	rule      string
	ruleOK    bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new gate view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		panel:     indicator.NewPanel(s),
		password:  input.NewPasswordInput(s),
		statusbar: status.NewBar(s, km),
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.password.Init()
}

// Update handles messages for the gate view. Keys that are not login or
// sensor bindings go to the password field; an edit emits PasswordEdited.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SnapshotPublished:
		v.panel.SetSnapshot(msg.Snapshot)
		snap := v.panel.Snapshot()
		v.statusbar.SetSession(snap.SessionID, snap.Seq)
		if v.statusbar.State() == status.StateError {
			return v, nil
		}
		if snap.Gate {
			v.statusbar.SetState(status.StateOpen)
		} else {
			v.statusbar.SetState(status.StateWaiting)
		}
		return v, nil

	case messages.LoginAttempted:
		v.err = msg.Err
		switch {
		case msg.Err == nil:
			v.statusbar.SetState(status.StateLoggedIn)
		case errors.Is(msg.Err, domain.ErrGateClosed):
			v.statusbar.SetMessage("not all conditions are met")
		default:
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		var changed bool
		v.password, cmd, changed = v.password.Update(msg)
		if !changed {
			return v, cmd
		}
		// Typing again clears a stale error or hint.
		v.statusbar.SetMessage("")
		if v.statusbar.State() == status.StateError {
			v.statusbar.Clear()
		}
		value := v.password.Value()
		return v, tea.Batch(cmd, func() tea.Msg {
			return messages.PasswordEdited{Value: value}
		})
	}

	var cmd tea.Cmd
	v.password, cmd, _ = v.password.Update(msg)
	return v, cmd
}

// View renders the gate view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("SecretPass"))
	b.WriteString("\n\n")

	if v.simulated {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Heading %5.1f°", v.heading)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.panel.View())
	b.WriteString("\n\n")
	b.WriteString(v.password.View())
	b.WriteString("\n")
	b.WriteString(v.renderRule())
	b.WriteString("\n\n")
	b.WriteString(v.renderButton())

	body := b.String()
	bar := v.statusbar.View()

	gap := v.height - lipgloss.Height(body) - lipgloss.Height(bar)
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + bar
}

func (v *View) renderRule() string {
	if !v.ruleOK {
		return v.styles.Muted.Render("Hint: battery level unavailable")
	}
	return v.styles.Help.Render("Hint: " + v.rule)
}

func (v *View) renderButton() string {
	if v.LoginEnabled() {
		return v.styles.ButtonEnabled.Render(loginLabel)
	}
	return v.styles.ButtonDisabled.Render(loginLabel)
}

// LoginEnabled reports whether the button is enabled, i.e. the gate is open.
func (v *View) LoginEnabled() bool {
	return v.panel.Snapshot().Gate
}

// Snapshot returns the snapshot being displayed.
func (v *View) Snapshot() domain.Snapshot {
	return v.panel.Snapshot()
}

// Password returns the typed password.
func (v *View) Password() string {
	return v.password.Value()
}

// SetSimulated shows the heading line and sensor key hints.
func (v *View) SetSimulated(simulated bool) {
	v.simulated = simulated
	v.statusbar.SetSimulated(simulated)
}

// SetHeading sets the displayed simulated heading.
func (v *View) SetHeading(degrees float64) {
	v.heading = degrees
}

// SetRule sets the password hint. ok is false when no battery reading exists.
func (v *View) SetRule(rule string, ok bool) {
	v.rule = rule
	v.ruleOK = ok
}

// SetHelp toggles the help hint state of the status bar.
func (v *View) SetHelp(on bool) {
	if on {
		v.statusbar.SetState(status.StateHelp)
		return
	}
	v.statusbar.Clear()
	if v.LoginEnabled() {
		v.statusbar.SetState(status.StateOpen)
	}
}

// StatusBar exposes the status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.panel.SetWidth(width)
	v.password.SetWidth(width / 2)
	v.statusbar.SetWidth(width)
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}
