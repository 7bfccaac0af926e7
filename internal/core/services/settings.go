package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDirectoryTarget     = "directory.target_name"
	keyDirectoryPath       = "directory.path"
	keyDirectoryPermission = "directory.permission"
	keySensorsBackend      = "sensors.backend"
	keySensorsIIOPath      = "sensors.iio_path"
	keySensorsFeedPath     = "sensors.feed_path"
	keySensorsPollMS       = "sensors.poll_ms"
	keyMotionThreshold     = "motion.threshold"
	keyMotionDebounceMS    = "motion.debounce_ms"
	keyBatteryBackend      = "battery.backend"
	keyBatteryFixed        = "battery.fixed_percent"
	keyBatterySupplyPath   = "battery.supply_path"
	keyPasswordPrefix      = "password.prefix"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Invalid stored values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Directory: domain.DirectorySettings{
			TargetName: s.getString(keyDirectoryTarget, d.Directory.TargetName),
			Path:       s.configStore.GetString(keyDirectoryPath),
			Permission: s.getPermission(d.Directory.Permission),
		},
		Sensors: domain.SensorSettings{
			Backend:      s.getSensorBackend(d.Sensors.Backend),
			IIOPath:      s.getString(keySensorsIIOPath, d.Sensors.IIOPath),
			FeedPath:     s.configStore.GetString(keySensorsFeedPath),
			PollInterval: s.getMillis(keySensorsPollMS, d.Sensors.PollInterval),
		},
		Motion: domain.MotionSettings{
			Threshold: s.getPositiveFloat(keyMotionThreshold, d.Motion.Threshold),
			Debounce:  s.getMillis(keyMotionDebounceMS, d.Motion.Debounce),
		},
		Battery: domain.BatterySettings{
			Backend:      s.getBatteryBackend(d.Battery.Backend),
			FixedPercent: s.getPercent(keyBatteryFixed, d.Battery.FixedPercent),
			SupplyPath:   s.getString(keyBatterySupplyPath, d.Battery.SupplyPath),
		},
		Password: domain.PasswordSettings{
			Prefix: s.getString(keyPasswordPrefix, d.Password.Prefix),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDirectoryTarget, settings.Directory.TargetName},
		{keyDirectoryPath, settings.Directory.Path},
		{keyDirectoryPermission, settings.Directory.Permission.String()},
		{keySensorsBackend, settings.Sensors.Backend.String()},
		{keySensorsIIOPath, settings.Sensors.IIOPath},
		{keySensorsFeedPath, settings.Sensors.FeedPath},
		{keySensorsPollMS, settings.Sensors.PollInterval.Milliseconds()},
		{keyMotionThreshold, settings.Motion.Threshold},
		{keyMotionDebounceMS, settings.Motion.Debounce.Milliseconds()},
		{keyBatteryBackend, settings.Battery.Backend.String()},
		{keyBatteryFixed, settings.Battery.FixedPercent},
		{keyBatterySupplyPath, settings.Battery.SupplyPath},
		{keyPasswordPrefix, settings.Password.Prefix},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyDirectoryTarget, keyPasswordPrefix:
		if value == "" {
			return fmt.Errorf("%s must not be empty: %w", key, domain.ErrInvalidInput)
		}
		stored = value
	case keyDirectoryPath, keySensorsIIOPath, keySensorsFeedPath, keyBatterySupplyPath:
		stored = value
	case keyDirectoryPermission:
		if !domain.PermissionPolicy(value).IsValid() {
			return fmt.Errorf("%s %q: %w", key, value, domain.ErrUnsupportedType)
		}
		stored = value
	case keySensorsBackend:
		if !domain.SensorBackend(value).IsValid() {
			return fmt.Errorf("%s %q: %w", key, value, domain.ErrUnsupportedType)
		}
		stored = value
	case keyBatteryBackend:
		if !domain.BatteryBackend(value).IsValid() {
			return fmt.Errorf("%s %q: %w", key, value, domain.ErrUnsupportedType)
		}
		stored = value
	case keySensorsPollMS, keyMotionDebounceMS:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		stored = n
	case keyBatteryFixed:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("%s must be between 0 and 100: %w", key, domain.ErrInvalidInput)
		}
		stored = n
	case keyMotionThreshold:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		stored = f
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}

	return s.configStore.Set(key, stored)
}

// Keys returns every recognised config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyDirectoryTarget, keyDirectoryPath, keyDirectoryPermission,
		keySensorsBackend, keySensorsIIOPath, keySensorsFeedPath, keySensorsPollMS,
		keyMotionThreshold, keyMotionDebounceMS,
		keyBatteryBackend, keyBatteryFixed, keyBatterySupplyPath,
		keyPasswordPrefix,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getPermission(defaultVal domain.PermissionPolicy) domain.PermissionPolicy {
	raw := s.configStore.GetString(keyDirectoryPermission)
	if raw == "" {
		return defaultVal
	}
	if p := domain.PermissionPolicy(raw); p.IsValid() {
		return p
	}
	logger.Warn("settings: invalid %s %q, using %s", keyDirectoryPermission, raw, defaultVal)
	return defaultVal
}

func (s *SettingsService) getSensorBackend(defaultVal domain.SensorBackend) domain.SensorBackend {
	raw := s.configStore.GetString(keySensorsBackend)
	if raw == "" {
		return defaultVal
	}
	if b := domain.SensorBackend(raw); b.IsValid() {
		return b
	}
	logger.Warn("settings: invalid %s %q, using %s", keySensorsBackend, raw, defaultVal)
	return defaultVal
}

func (s *SettingsService) getBatteryBackend(defaultVal domain.BatteryBackend) domain.BatteryBackend {
	raw := s.configStore.GetString(keyBatteryBackend)
	if raw == "" {
		return defaultVal
	}
	if b := domain.BatteryBackend(raw); b.IsValid() {
		return b
	}
	logger.Warn("settings: invalid %s %q, using %s", keyBatteryBackend, raw, defaultVal)
	return defaultVal
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if ms := s.configStore.GetInt(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}

func (s *SettingsService) getPercent(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	n := s.configStore.GetInt(key)
	if n < 0 || n > 100 {
		logger.Warn("settings: %s %d out of range, using %d", key, n, defaultVal)
		return defaultVal
	}
	return n
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	// TOML numbers come back as int64 or float64 depending on the literal.
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	}
	if f <= 0 {
		logger.Warn("settings: invalid %s %v, using %v", key, val, defaultVal)
		return defaultVal
	}
	return f
}
