// Package tui provides the interactive login screen for secretpass.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
)

// PermissionResponder answers a pending directory permission prompt.
type PermissionResponder interface {
	// Pending returns the question waiting for an answer, if any.
	Pending() (string, bool)

	// Answer resolves the pending prompt.
	Answer(allow bool) error
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session drives the gated login.
	Session driving.SessionService

	// Sensors, when set, lets the keyboard turn and shake the device.
	Sensors driving.SimulatedSensors

	// Permissions, when set, answers the contacts prompt from a dialog.
	Permissions PermissionResponder
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionService) *Ports {
	return &Ports{Session: session}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
