// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// SessionStarted is sent once the session has run its first activation.
type SessionStarted struct {
	Err error
}

// SnapshotPublished carries the latest condition snapshot.
// Intermediate snapshots may be skipped; the last one is never lost.
type SnapshotPublished struct {
	Snapshot domain.Snapshot
}

// PermissionRequested is sent when the directory permission prompt opens.
type PermissionRequested struct {
	Question string
}

// PermissionAnswered is sent after the user answers the prompt.
type PermissionAnswered struct {
	Allowed bool
	Err     error
}

// PasswordEdited is sent when the password field changes.
type PasswordEdited struct {
	Value string
}

// LoginAttempted carries the outcome of pressing the login button.
type LoginAttempted struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewGate shows the conditions and the password field.
	ViewGate ViewType = iota
	// ViewPermission is the contacts permission dialog.
	ViewPermission
	// ViewSuccess is shown after login.
	ViewSuccess
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewGate:
		return "gate"
	case ViewPermission:
		return "permission"
	case ViewSuccess:
		return "success"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
