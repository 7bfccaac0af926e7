package mcp

import (
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
)

// PermissionResponder answers a pending directory permission prompt.
type PermissionResponder interface {
	Pending() (string, bool)
	Answer(allow bool) error
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the headless session the tools act on.
	Session driving.SessionService

	// Sensors backs rotate and shake. Optional.
	Sensors driving.SimulatedSensors

	// Permissions backs answer_permission. Optional.
	Permissions PermissionResponder

	// Settings backs the settings resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
