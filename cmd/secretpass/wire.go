package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/battery"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/permission"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/sensors/feed"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/sensors/manual"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/sensors/sysfs"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/services"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// simulatedHeading is where the manual compass starts, away from north.
const simulatedHeading = 180

// sensorSet is what a sensor backend provides. simulated is nil for
// hardware backends.
type sensorSet struct {
	headings  driven.HeadingSource
	motion    driven.MotionSource
	simulated *manual.Sensors
}

// build is the composition root: config file, environment overlay,
// settings, then one adapter per driven port.
func build(opts cli.Options) (*cli.Services, error) {
	configStore, dir, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.Battery >= 0 {
		settings.Battery.Backend = domain.BatteryBackendFixed
		settings.Battery.FixedPercent = opts.Battery
	}

	contacts, closeContacts, err := buildDirectory(opts, dir, settings.Directory)
	if err != nil {
		return nil, err
	}

	sensors, err := buildSensors(settings.Sensors)
	if err != nil {
		_ = closeContacts()
		return nil, err
	}

	var prompter driven.Prompter
	var deferred *permission.Deferred
	switch opts.Prompt {
	case cli.PromptTerminal:
		prompter = permission.NewTerminal(os.Stdin, os.Stderr)
	default:
		deferred = permission.NewDeferred(nil)
		prompter = deferred
	}

	session, err := services.NewSession(services.SessionConfig{
		TargetName:     settings.Directory.TargetName,
		Motion:         settings.Motion,
		PasswordPrefix: settings.Password.Prefix,
	}, services.SessionDeps{
		Headings:    sensors.headings,
		Motion:      sensors.motion,
		Directory:   contacts,
		Permissions: permission.NewGate(settings.Directory.Permission, prompter),
		Battery:     buildBattery(settings.Battery),
	})
	if err != nil {
		_ = closeContacts()
		return nil, err
	}

	logger.Debug("session %s: sensors=%s battery=%s permission=%s",
		session.ID(), settings.Sensors.Backend, settings.Battery.Backend, settings.Directory.Permission)

	svc := &cli.Services{
		Session:   session,
		Settings:  settingsService,
		Contacts:  contacts,
		ConfigDir: dir,
		Close:     closeContacts,
	}
	// Assign only non-nil values so the interfaces stay nil otherwise.
	if sensors.simulated != nil {
		svc.Sensors = sensors.simulated
	}
	if deferred != nil {
		svc.Prompts = deferred
	}
	return svc, nil
}

func buildConfig(opts cli.Options) (driven.ConfigStore, string, error) {
	if opts.Ephemeral {
		store, err := env.New(memory.NewConfigStore())
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, "", err
		}
		dir = d
	}

	base, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	store, err := env.New(base)
	if err != nil {
		return nil, "", err
	}
	return store, dir, nil
}

func buildDirectory(
	opts cli.Options,
	dir string,
	settings domain.DirectorySettings,
) (driven.DirectoryAdmin, func() error, error) {
	if opts.Ephemeral {
		return memory.NewDirectory(), func() error { return nil }, nil
	}

	path := settings.Path
	if path == "" {
		path = filepath.Join(dir, sqlite.DefaultFileName)
	}
	store, err := sqlite.NewStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening contacts: %w", err)
	}
	return store, store.Close, nil
}

func buildSensors(settings domain.SensorSettings) (sensorSet, error) {
	switch settings.Backend {
	case domain.SensorBackendSysfs:
		s := sysfs.New(settings.IIOPath, settings.PollInterval)
		return sensorSet{headings: s, motion: s}, nil
	case domain.SensorBackendFeed:
		if settings.FeedPath == "" {
			return sensorSet{}, errors.New("sensors.feed_path is required for the feed backend")
		}
		s := feed.New(settings.FeedPath)
		return sensorSet{headings: s, motion: s}, nil
	default:
		s := manual.New(simulatedHeading)
		return sensorSet{headings: s, motion: s, simulated: s}, nil
	}
}

func buildBattery(settings domain.BatterySettings) driven.Battery {
	if settings.Backend == domain.BatteryBackendFixed {
		return battery.Fixed(settings.FixedPercent)
	}
	return battery.NewSysfs(settings.SupplyPath)
}
