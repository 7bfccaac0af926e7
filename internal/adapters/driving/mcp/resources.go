package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for secretpass resources.
	uriScheme = "secretpass://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Current condition snapshot of the running session",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "conditions/{slot}",
		Name:        "condition",
		Description: "One condition: orientation, ambient, motion, directory_match or password_match",
		MIMEType:    "text/plain",
	}, s.handleConditionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective settings after config file and environment overrides",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonContents(req.Params.URI, s.conditions())
}

func (s *Server) handleConditionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slot, ok := extractSlot(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	value := s.ports.Session.Snapshot().Vector.Get(slot)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("%t", value),
		}},
	}, nil
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	type settingsInfo struct {
		TargetName     string `json:"directory_target_name"`
		Permission     string `json:"directory_permission"`
		SensorBackend  string `json:"sensors_backend"`
		BatteryBackend string `json:"battery_backend"`
		MotionThresh   string `json:"motion_threshold"`
		MotionDebounce string `json:"motion_debounce"`
	}

	return jsonContents(req.Params.URI, settingsInfo{
		TargetName:     settings.Directory.TargetName,
		Permission:     settings.Directory.Permission.String(),
		SensorBackend:  settings.Sensors.Backend.String(),
		BatteryBackend: settings.Battery.Backend.String(),
		MotionThresh:   fmt.Sprintf("%g", settings.Motion.Threshold),
		MotionDebounce: settings.Motion.Debounce.String(),
	})
}

// extractSlot parses a URI like secretpass://conditions/{slot}.
func extractSlot(uri string) (domain.ConditionSlot, bool) {
	const prefix = uriScheme + "conditions/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	return domain.ParseConditionSlot(strings.TrimPrefix(uri, prefix))
}
