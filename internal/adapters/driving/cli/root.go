// Package cli provides the cobra command tree for secretpass.
// Commands reach the core only through the Services built for them.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Persistent flags.
var (
	verbose        bool
	configDir      string
	logFile        string
	ephemeral      bool
	batteryPercent int
)

// PromptMode selects who answers the contacts permission prompt.
type PromptMode int

const (
	// PromptDeferred leaves the prompt pending until a dialog or MCP tool answers it.
	PromptDeferred PromptMode = iota

	// PromptTerminal asks y/N on the controlling terminal.
	PromptTerminal
)

// Options carries the flags that shape how services are built.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.secretpass.
	ConfigDir string

	// Ephemeral keeps settings and contacts in memory.
	Ephemeral bool

	// Battery, when non-negative, replaces the battery reading with a fixed percentage.
	Battery int

	// Prompt selects the permission prompter.
	Prompt PromptMode
}

// PromptResponder answers deferred permission prompts.
type PromptResponder interface {
	Pending() (string, bool)
	Answer(allow bool) error
	SetNotify(notify func(question string))
}

// Services is what a command may use. Sensors and Prompts are nil when
// the configured backends do not support them.
type Services struct {
	Session  driving.SessionService
	Settings driving.SettingsService
	Contacts driven.DirectoryAdmin
	Sensors  driving.SimulatedSensors
	Prompts  PromptResponder

	// ConfigDir is the resolved configuration directory.
	ConfigDir string

	// Close releases stores. Safe to call once.
	Close func() error
}

// Builder constructs Services for one command invocation.
type Builder func(opts Options) (*Services, error)

var builder Builder

// SetBuilder installs the composition root.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "secretpass",
	Short: "A login screen that opens only when five conditions hold",
	Long: `secretpass shows a login button that is enabled only while every condition
holds at the same time:

  orientation      the device faces north (350° to 10°)
  ambient          ambient noise (never satisfied)
  motion           the device was shaken during this session
  directory_match  a contact with the configured name exists
  password_match   the password equals "secret" followed by the battery percentage

Run without a subcommand to open the interactive screen.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log condition changes and source problems")
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.secretpass)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&ephemeral, "ephemeral", false, "keep settings and contacts in memory only")
	pf.IntVar(&batteryPercent, "battery", -1, "use a fixed battery percentage (0-100)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if logFile == "" {
		return nil
	}
	return redirectLog(logFile)
}

func redirectLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	logger.SetTimestamps(true)
	return nil
}

// buildServices runs the installed builder with the current flags.
func buildServices(mode PromptMode) (*Services, error) {
	if builder == nil {
		return nil, errors.New("services not configured")
	}
	if batteryPercent > 100 {
		return nil, fmt.Errorf("--battery %d: must be between 0 and 100", batteryPercent)
	}
	return builder(Options{
		ConfigDir: configDir,
		Ephemeral: ephemeral,
		Battery:   batteryPercent,
		Prompt:    mode,
	})
}

func closeServices(svc *Services) {
	if svc == nil || svc.Close == nil {
		return
	}
	if err := svc.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}
