// Package mcp provides an MCP (Model Context Protocol) server adapter for secretpass.
// It lets an assistant inspect the condition gate and drive a session over stdio.
package mcp

import "errors"

var (
	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("mcp: session service is required")

	// ErrNoSimulatedSensors is returned by rotate and shake unless the manual
	// sensor backend is active.
	ErrNoSimulatedSensors = errors.New("mcp: sensors are not simulated; set sensors.backend = manual")

	// ErrNoPermissionPrompts is returned by answer_permission when prompts
	// are not answered through this server.
	ErrNoPermissionPrompts = errors.New("mcp: permission prompts are not handled by this server")
)
