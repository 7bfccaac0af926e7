package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a headless session and serve it over stdio using the Model Context
Protocol, so an assistant can inspect the conditions and drive the session.

Tools: conditions, submit_password, resume, pause, login, rotate, shake,
answer_permission. rotate and shake need sensors.backend = manual.

Example client configuration:
  {
    "mcpServers": {
      "secretpass": {
        "command": "/path/to/secretpass",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(PromptDeferred)
	if err != nil {
		return err
	}
	defer closeServices(svc)

	ports := &mcp.Ports{
		Session:  svc.Session,
		Sensors:  svc.Sensors,
		Settings: svc.Settings,
	}
	if svc.Prompts != nil {
		ports.Permissions = svc.Prompts
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	return server.Run(cmd.Context())
}
