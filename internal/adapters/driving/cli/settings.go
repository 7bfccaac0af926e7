package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables SECRETPASS_<SECTION>_<KEY>, for example
SECRETPASS_MOTION_THRESHOLD, override the file for one run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key, for example:

  secretpass settings set motion.threshold 15
  secretpass settings set directory.permission grant`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every setting key",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsServices() (*Services, error) {
	svc, err := buildServices(PromptTerminal)
	if err != nil {
		return nil, err
	}
	if svc.Settings == nil {
		closeServices(svc)
		return nil, errors.New("settings service not configured")
	}
	return svc, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Directory]")
	cmd.Printf("  Target name: %s\n", settings.Directory.TargetName)
	cmd.Printf("  Database: %s\n", orDefault(settings.Directory.Path, "~/.secretpass/contacts.db"))
	cmd.Printf("  Permission: %s\n", settings.Directory.Permission)
	cmd.Println()

	cmd.Println("[Sensors]")
	cmd.Printf("  Backend: %s\n", settings.Sensors.Backend.Description())
	cmd.Printf("  IIO path: %s\n", settings.Sensors.IIOPath)
	cmd.Printf("  Feed path: %s\n", orDefault(settings.Sensors.FeedPath, "(not set)"))
	cmd.Printf("  Poll interval: %s\n", settings.Sensors.PollInterval)
	cmd.Println()

	cmd.Println("[Motion]")
	cmd.Printf("  Threshold: %g m/s² above gravity\n", settings.Motion.Threshold)
	cmd.Printf("  Debounce: %s\n", settings.Motion.Debounce)
	cmd.Println()

	cmd.Println("[Battery]")
	cmd.Printf("  Backend: %s\n", settings.Battery.Backend)
	cmd.Printf("  Fixed percent: %d\n", settings.Battery.FixedPercent)
	cmd.Printf("  Supply path: %s\n", settings.Battery.SupplyPath)
	cmd.Println()

	cmd.Println("[Password]")
	cmd.Printf("  Prefix: %s\n", settings.Password.Prefix)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	if err := svc.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	svc, err := settingsServices()
	if err != nil {
		return err
	}
	defer closeServices(svc)

	for _, key := range svc.Settings.Keys() {
		cmd.Println(key)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
