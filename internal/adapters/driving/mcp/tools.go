package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// ConditionsOutput describes the session's current snapshot.
type ConditionsOutput struct {
	SessionID         string          `json:"session_id"`
	Seq               uint64          `json:"seq"`
	Gate              bool            `json:"gate"`
	Conditions        map[string]bool `json:"conditions"`
	Finished          bool            `json:"finished"`
	PendingPermission string          `json:"pending_permission,omitempty"`
}

// SubmitPasswordInput is the input schema for submit_password.
type SubmitPasswordInput struct {
	Password string `json:"password" jsonschema:"the full contents of the password field"`
}

// LoginOutput is the output schema for login.
type LoginOutput struct {
	LoggedIn bool   `json:"logged_in"`
	Reason   string `json:"reason,omitempty"`
}

// RotateInput is the input schema for rotate.
type RotateInput struct {
	Delta float64 `json:"delta" jsonschema:"degrees to turn; negative turns counter-clockwise"`
}

// RotateOutput is the output schema for rotate.
type RotateOutput struct {
	Heading float64 `json:"heading"`
}

// AnswerPermissionInput is the input schema for answer_permission.
type AnswerPermissionInput struct {
	Allow bool `json:"allow" jsonschema:"true grants contacts access, false denies it"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "conditions",
		Description: "Show the five login conditions and whether the gate is open",
	}, s.handleConditions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_password",
		Description: "Replace the password field and re-check it against the battery-derived secret",
	}, s.handleSubmitPassword)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resume",
		Description: "Reattach sensors and re-check the contacts directory",
	}, s.handleResume)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pause",
		Description: "Detach sensors as if the app went to the background",
	}, s.handlePause)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "login",
		Description: "Press the login button; succeeds only while every condition holds",
	}, s.handleLogin)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rotate",
		Description: "Turn the simulated compass (manual sensor backend only)",
	}, s.handleRotate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "shake",
		Description: "Shake the simulated device once (manual sensor backend only)",
	}, s.handleShake)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_permission",
		Description: "Answer the pending contacts permission prompt",
	}, s.handleAnswerPermission)
}

func (s *Server) conditions() ConditionsOutput {
	snap := s.ports.Session.Snapshot()
	out := ConditionsOutput{
		SessionID:  snap.SessionID,
		Seq:        snap.Seq,
		Gate:       snap.Gate,
		Conditions: snap.Vector.Map(),
		Finished:   s.ports.Session.Finished(),
	}
	if s.ports.Permissions != nil {
		if q, ok := s.ports.Permissions.Pending(); ok {
			out.PendingPermission = q
		}
	}
	return out
}

func (s *Server) handleConditions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	return nil, s.conditions(), nil
}

func (s *Server) handleSubmitPassword(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SubmitPasswordInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	s.ports.Session.SubmitPassword(input.Password)
	return nil, s.conditions(), nil
}

func (s *Server) handleResume(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	if err := s.ports.Session.Resume(); err != nil {
		return nil, ConditionsOutput{}, err
	}
	return nil, s.conditions(), nil
}

func (s *Server) handlePause(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	s.ports.Session.Pause()
	return nil, s.conditions(), nil
}

// handleLogin reports a closed gate as an unsuccessful result, not a tool error.
func (s *Server) handleLogin(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, LoginOutput, error) {
	err := s.ports.Session.Login()
	switch {
	case err == nil:
		return nil, LoginOutput{LoggedIn: true}, nil
	case errors.Is(err, domain.ErrGateClosed), errors.Is(err, domain.ErrSessionFinished):
		return nil, LoginOutput{Reason: err.Error()}, nil
	default:
		return nil, LoginOutput{}, err
	}
}

func (s *Server) handleRotate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RotateInput,
) (*mcp.CallToolResult, RotateOutput, error) {
	if s.ports.Sensors == nil {
		return nil, RotateOutput{}, ErrNoSimulatedSensors
	}
	s.ports.Sensors.Rotate(input.Delta)
	return nil, RotateOutput{Heading: s.ports.Sensors.Heading()}, nil
}

func (s *Server) handleShake(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	if s.ports.Sensors == nil {
		return nil, ConditionsOutput{}, ErrNoSimulatedSensors
	}
	s.ports.Sensors.Shake()
	return nil, s.conditions(), nil
}

func (s *Server) handleAnswerPermission(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnswerPermissionInput,
) (*mcp.CallToolResult, ConditionsOutput, error) {
	if s.ports.Permissions == nil {
		return nil, ConditionsOutput{}, ErrNoPermissionPrompts
	}
	if err := s.ports.Permissions.Answer(input.Allow); err != nil {
		return nil, ConditionsOutput{}, err
	}
	return nil, s.conditions(), nil
}
