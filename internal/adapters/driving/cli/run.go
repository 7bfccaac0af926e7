package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// defaultLogName is used when --verbose is given to the TUI without --log-file.
const defaultLogName = "secretpass.log"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive login screen",
	Long: `Open the interactive login screen.

Controls:
  (type)     Edit the password
  Enter      Log in (only when every condition holds)
  PgUp/PgDn  Turn the simulated compass (manual sensors)
  F2         Shake the simulated device (manual sensors)
  y / n      Answer the contacts permission dialog
  F1         Help
  Ctrl+C     Quit

Focus changes of the terminal pause and resume the sensors.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	svc, err := buildServices(PromptDeferred)
	if err != nil {
		return err
	}
	defer closeServices(svc)

	// The TUI owns the terminal, so verbose output goes to a file.
	if logger.IsVerbose() && logFile == "" && svc.ConfigDir != "" {
		if err := redirectLog(filepath.Join(svc.ConfigDir, defaultLogName)); err != nil {
			return err
		}
	}

	ports := tui.NewPorts(svc.Session)
	ports.Sensors = svc.Sensors
	if svc.Prompts != nil {
		ports.Permissions = svc.Prompts
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if svc.Prompts != nil {
		svc.Prompts.SetNotify(app.NotifyPrompt)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
