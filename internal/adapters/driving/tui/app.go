package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/views/gate"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/views/permission"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/views/success"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx bounds the session and every waiting command.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	gateView       *gate.View
	permissionView *permission.View
	successView    *success.View

	// snapshots and prompts carry events from service goroutines.
	snapshots *snapshotFeed
	prompts   *promptFeed

	unsubscribe func()

	currentView  messages.ViewType
	previousView messages.ViewType

	width  int
	height int
	ready  bool
	err    error
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrMissingSessionService
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		gateView:       gate.NewView(s, km),
		permissionView: permission.NewView(s, km),
		successView:    success.NewView(s),
		snapshots:      newSnapshotFeed(),
		prompts:        newPromptFeed(),
		currentView:    messages.ViewGate,
	}

	if ports.Sensors != nil {
		a.gateView.SetSimulated(true)
		a.gateView.SetHeading(ports.Sensors.Heading())
	}

	return a, nil
}

// WithContext sets the context for the application.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// NotifyPrompt is the callback for a deferred permission prompter.
// It is safe to call from any goroutine.
func (a *App) NotifyPrompt(question string) {
	a.prompts.notify(question)
}

// Init implements tea.Model. It subscribes to the session and starts it.
func (a *App) Init() tea.Cmd {
	if a.unsubscribe == nil {
		a.unsubscribe = a.ports.Session.Subscribe(a.snapshots)
	}

	session, ctx := a.ports.Session, a.ctx
	return tea.Batch(
		tea.SetWindowTitle("SecretPass"),
		a.gateView.Init(),
		a.snapshots.wait(ctx),
		a.prompts.wait(ctx),
		func() tea.Msg {
			return messages.SessionStarted{Err: session.Start(ctx)}
		},
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.gateView.SetDimensions(msg.Width, msg.Height)
		a.permissionView.SetDimensions(msg.Width, msg.Height)
		a.successView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.FocusMsg:
		if err := a.ports.Session.Resume(); err != nil && !errors.Is(err, domain.ErrSessionFinished) {
			logger.Debug("tui: resume: %v", err)
		}
		return a, nil

	case tea.BlurMsg:
		a.ports.Session.Pause()
		return a, nil

	case messages.SessionStarted:
		if msg.Err != nil {
			return a.Update(messages.ErrorOccurred{Err: fmt.Errorf("start session: %w", msg.Err)})
		}
		return a, nil

	case messages.SnapshotPublished:
		a.gateView, _ = a.gateView.Update(msg)
		a.refreshRule()
		return a, a.snapshots.wait(a.ctx)

	case messages.PermissionRequested:
		if a.ports.Permissions != nil && a.currentView != messages.ViewSuccess {
			a.permissionView.SetQuestion(msg.Question)
			a.switchView(messages.ViewPermission)
		}
		return a, a.prompts.wait(a.ctx)

	case messages.PermissionAnswered:
		a.switchView(a.previousView)
		if a.ports.Permissions == nil {
			return a, nil
		}
		if err := a.ports.Permissions.Answer(msg.Allowed); err != nil {
			return a.Update(messages.ErrorOccurred{Err: err})
		}
		return a, nil

	case messages.PasswordEdited:
		a.ports.Session.SubmitPassword(msg.Value)
		a.refreshRule()
		return a, nil

	case messages.LoginAttempted:
		a.gateView, _ = a.gateView.Update(msg)
		if msg.Err == nil {
			a.successView.SetSession(a.ports.Session.ID())
			a.switchView(messages.ViewSuccess)
		}
		return a, nil

	case messages.ViewChanged:
		a.switchView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.gateView, _ = a.gateView.Update(msg)
		return a, nil

	case messages.Quit:
		a.close()
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	if a.currentView == messages.ViewGate {
		a.gateView, cmd = a.gateView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		a.close()
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPermission:
		a.permissionView, cmd = a.permissionView.Update(msg)
		return a, cmd

	case messages.ViewSuccess:
		a.successView, cmd = a.successView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.switchView(messages.ViewGate)
		}
		return a, nil

	case messages.ViewGate:
	}

	switch {
	case keymap.Matches(k, a.keymap.Help):
		a.switchView(messages.ViewHelp)
		return a, nil
	case keymap.Matches(k, a.keymap.Login):
		return a, a.login()
	}

	if sensors := a.ports.Sensors; sensors != nil {
		switch {
		case keymap.Matches(k, a.keymap.RotateRight):
			sensors.Rotate(keymap.HeadingStep)
			a.gateView.SetHeading(sensors.Heading())
			return a, nil
		case keymap.Matches(k, a.keymap.RotateLeft):
			sensors.Rotate(-keymap.HeadingStep)
			a.gateView.SetHeading(sensors.Heading())
			return a, nil
		case keymap.Matches(k, a.keymap.Shake):
			sensors.Shake()
			return a, nil
		}
	}

	a.gateView, cmd = a.gateView.Update(msg)
	return a, cmd
}

// login runs off the event loop because a successful login detaches sensors.
func (a *App) login() tea.Cmd {
	session := a.ports.Session
	return func() tea.Msg {
		return messages.LoginAttempted{Err: session.Login()}
	}
}

// refreshRule re-reads the battery-derived hint; the level drifts while
// the screen is open.
func (a *App) refreshRule() {
	a.gateView.SetRule(a.ports.Session.PasswordRule())
}

func (a *App) switchView(v messages.ViewType) {
	if v == a.currentView {
		return
	}
	if a.currentView == messages.ViewHelp {
		a.gateView.SetHelp(false)
	}
	if v == messages.ViewHelp {
		a.gateView.SetHelp(true)
	}
	a.previousView = a.currentView
	a.currentView = v
}

func (a *App) close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.ports.Session.Close()
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPermission:
		return a.permissionView.View()
	case messages.ViewSuccess:
		return a.successView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.gateView.View()
	}
}

// viewHelp renders the help view from the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString("Log in once every condition is met.\n")
	b.WriteString("Typing edits the password field.\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application and closes the session on exit.
func (a *App) Run() error {
	defer a.close()

	p := tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(a.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil // Cancelled from outside, e.g. SIGINT
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Gate exposes the login view (for testing).
func (a *App) Gate() *gate.View {
	return a.gateView
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
