// Package env layers SECRETPASS_* environment variables over another
// ConfigStore. Environment values win on read; writes go to the base store.
package env

import (
	"fmt"
	"os"
	"strings"

	goenv "github.com/caarlos0/env/v11"

	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// Prefix is prepended to every variable name.
const Prefix = "SECRETPASS_"

// Overrides lists the settings that may come from the environment.
// Unset variables leave their field nil.
type Overrides struct {
	TargetName     *string  `env:"DIRECTORY_TARGET_NAME"`
	DirectoryPath  *string  `env:"DIRECTORY_PATH"`
	Permission     *string  `env:"DIRECTORY_PERMISSION"`
	SensorsBackend *string  `env:"SENSORS_BACKEND"`
	IIOPath        *string  `env:"SENSORS_IIO_PATH"`
	FeedPath       *string  `env:"SENSORS_FEED_PATH"`
	PollMS         *int64   `env:"SENSORS_POLL_MS"`
	Threshold      *float64 `env:"MOTION_THRESHOLD"`
	DebounceMS     *int64   `env:"MOTION_DEBOUNCE_MS"`
	BatteryBackend *string  `env:"BATTERY_BACKEND"`
	FixedPercent   *int64   `env:"BATTERY_FIXED_PERCENT"`
	SupplyPath     *string  `env:"BATTERY_SUPPLY_PATH"`
	PasswordPrefix *string  `env:"PASSWORD_PREFIX"`
}

// values flattens the set fields into config keys. Integers are stored
// as int64, the same type the TOML store produces.
func (o Overrides) values() map[string]any {
	out := make(map[string]any)
	put := func(key string, v any) { out[key] = v }

	if o.TargetName != nil {
		put("directory.target_name", *o.TargetName)
	}
	if o.DirectoryPath != nil {
		put("directory.path", *o.DirectoryPath)
	}
	if o.Permission != nil {
		put("directory.permission", *o.Permission)
	}
	if o.SensorsBackend != nil {
		put("sensors.backend", *o.SensorsBackend)
	}
	if o.IIOPath != nil {
		put("sensors.iio_path", *o.IIOPath)
	}
	if o.FeedPath != nil {
		put("sensors.feed_path", *o.FeedPath)
	}
	if o.PollMS != nil {
		put("sensors.poll_ms", *o.PollMS)
	}
	if o.Threshold != nil {
		put("motion.threshold", *o.Threshold)
	}
	if o.DebounceMS != nil {
		put("motion.debounce_ms", *o.DebounceMS)
	}
	if o.BatteryBackend != nil {
		put("battery.backend", *o.BatteryBackend)
	}
	if o.FixedPercent != nil {
		put("battery.fixed_percent", *o.FixedPercent)
	}
	if o.SupplyPath != nil {
		put("battery.supply_path", *o.SupplyPath)
	}
	if o.PasswordPrefix != nil {
		put("password.prefix", *o.PasswordPrefix)
	}
	return out
}

// Overlay is a ConfigStore whose reads prefer environment overrides.
type Overlay struct {
	base      driven.ConfigStore
	overrides map[string]any
}

// New parses the process environment and wraps base.
func New(base driven.ConfigStore) (*Overlay, error) {
	return NewFromMap(base, environMap())
}

// NewFromMap parses environ instead of the process environment.
func NewFromMap(base driven.ConfigStore, environ map[string]string) (*Overlay, error) {
	var o Overrides
	opts := goenv.Options{
		Prefix:      Prefix,
		Environment: environ,
	}
	if err := goenv.ParseWithOptions(&o, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &Overlay{base: base, overrides: o.values()}, nil
}

// Overridden returns the config keys currently set from the environment.
func (s *Overlay) Overridden() []string {
	keys := make([]string, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	return keys
}

// Get returns the environment value for key if set, else the base value.
func (s *Overlay) Get(key string) (any, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *Overlay) GetString(key string) string {
	if v, ok := s.overrides[key]; ok {
		str, _ := v.(string)
		return str
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *Overlay) GetInt(key string) int {
	if v, ok := s.overrides[key]; ok {
		n, _ := v.(int64)
		return int(n)
	}
	return s.base.GetInt(key)
}

// GetBool retrieves a boolean configuration value.
func (s *Overlay) GetBool(key string) bool {
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (s *Overlay) GetStringSlice(key string) []string {
	return s.base.GetStringSlice(key)
}

// Set writes to the base store. An environment override for the same
// key keeps winning on read.
func (s *Overlay) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the base store.
func (s *Overlay) Save() error {
	return s.base.Save()
}

// Load reloads the base store. The environment is read once, at construction.
func (s *Overlay) Load() error {
	return s.base.Load()
}

// Path returns the base store path.
func (s *Overlay) Path() string {
	return s.base.Path()
}

func environMap() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, Prefix) {
			out[k] = v
		}
	}
	return out
}
