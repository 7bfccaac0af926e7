package domain

import "time"

const unknownDescription = "Unknown"

// SensorBackend selects where orientation and motion samples come from.
type SensorBackend string

// Available sensor backends.
const (
	// SensorBackendSysfs reads Linux IIO devices under /sys/bus/iio.
	SensorBackendSysfs SensorBackend = "sysfs"

	// SensorBackendFeed tails a JSON-lines file written by another process.
	SensorBackendFeed SensorBackend = "feed"

	// SensorBackendManual is driven from the keyboard or MCP tools.
	SensorBackendManual SensorBackend = "manual"
)

// IsValid returns true if the backend is recognised.
func (b SensorBackend) IsValid() bool {
	switch b {
	case SensorBackendSysfs, SensorBackendFeed, SensorBackendManual:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SensorBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SensorBackend) Description() string {
	switch b {
	case SensorBackendSysfs:
		return "Linux IIO sensors (sysfs)"
	case SensorBackendFeed:
		return "JSON-lines feed file"
	case SensorBackendManual:
		return "Manual (keyboard simulation)"
	default:
		return unknownDescription
	}
}

// BatteryBackend selects where battery readings come from.
type BatteryBackend string

// Available battery backends.
const (
	// BatteryBackendSysfs reads /sys/class/power_supply.
	BatteryBackendSysfs BatteryBackend = "sysfs"

	// BatteryBackendFixed always reports a configured percentage.
	BatteryBackendFixed BatteryBackend = "fixed"
)

// IsValid returns true if the backend is recognised.
func (b BatteryBackend) IsValid() bool {
	return b == BatteryBackendSysfs || b == BatteryBackendFixed
}

// String returns the string representation.
func (b BatteryBackend) String() string {
	return string(b)
}

// PermissionPolicy decides how the directory permission prompt is answered.
type PermissionPolicy string

// Available permission policies.
const (
	// PermissionPolicyPrompt asks the user interactively.
	PermissionPolicyPrompt PermissionPolicy = "prompt"

	// PermissionPolicyGrant treats permission as already granted.
	PermissionPolicyGrant PermissionPolicy = "grant"

	// PermissionPolicyDeny answers every prompt with denied.
	PermissionPolicyDeny PermissionPolicy = "deny"
)

// IsValid returns true if the policy is recognised.
func (p PermissionPolicy) IsValid() bool {
	switch p {
	case PermissionPolicyPrompt, PermissionPolicyGrant, PermissionPolicyDeny:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PermissionPolicy) String() string {
	return string(p)
}

// DirectorySettings configures the contact directory lookup.
type DirectorySettings struct {
	// TargetName is matched exactly against the primary display name.
	TargetName string

	// Path is the SQLite database holding the directory.
	// Empty means ~/.secretpass/contacts.db.
	Path string

	// Permission decides how the access prompt is answered.
	Permission PermissionPolicy
}

// SensorSettings configures orientation and motion sources.
type SensorSettings struct {
	// Backend selects the sample source.
	Backend SensorBackend

	// IIOPath is the IIO device root for the sysfs backend.
	IIOPath string

	// FeedPath is the JSON-lines file for the feed backend.
	FeedPath string

	// PollInterval paces sysfs reads.
	PollInterval time.Duration
}

// MotionSettings configures shake detection.
type MotionSettings struct {
	// Threshold is the acceleration above gravity, in m/s², a sample must exceed.
	Threshold float64

	// Debounce is the minimum time between qualifying samples.
	Debounce time.Duration
}

// BatterySettings configures the battery reading.
type BatterySettings struct {
	// Backend selects the battery source.
	Backend BatteryBackend

	// FixedPercent is reported by the fixed backend.
	FixedPercent int

	// SupplyPath is the power_supply root for the sysfs backend.
	SupplyPath string
}

// PasswordSettings configures the derived password.
type PasswordSettings struct {
	// Prefix is prepended to the battery percentage.
	Prefix string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Directory DirectorySettings
	Sensors   SensorSettings
	Motion    MotionSettings
	Battery   BatterySettings
	Password  PasswordSettings
}

// DefaultAppSettings returns settings with the stock values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Directory: DirectorySettings{
			TargetName: "Chiburashka",
			Permission: PermissionPolicyPrompt,
		},
		Sensors: SensorSettings{
			Backend:      SensorBackendManual,
			IIOPath:      "/sys/bus/iio/devices",
			PollInterval: 200 * time.Millisecond,
		},
		Motion: MotionSettings{
			Threshold: 12,
			Debounce:  time.Second,
		},
		Battery: BatterySettings{
			Backend:      BatteryBackendSysfs,
			FixedPercent: 50,
			SupplyPath:   "/sys/class/power_supply",
		},
		Password: PasswordSettings{
			Prefix: "secret",
		},
	}
}

// AllSensorBackends returns all available sensor backends.
func AllSensorBackends() []SensorBackend {
	return []SensorBackend{
		SensorBackendManual,
		SensorBackendSysfs,
		SensorBackendFeed,
	}
}
