package domain

import "time"

// StandardGravity is the standard gravitational acceleration in m/s².
const StandardGravity = 9.80665

// HeadingSample is a compass reading in degrees. Sources may emit values
// outside [0, 360); classifiers normalise them.
type HeadingSample struct {
	Degrees float64
	At      time.Time
}

// MotionSample is a 3-axis acceleration reading in m/s², gravity included.
type MotionSample struct {
	X, Y, Z float64
	At      time.Time
}

// BatteryReading is a charge percentage. Available is false when the
// platform could not produce a value in [0, 100].
type BatteryReading struct {
	Percent   int
	Available bool
}

// NewBatteryReading validates a raw percentage.
func NewBatteryReading(percent int) BatteryReading {
	if percent < 0 || percent > 100 {
		return BatteryReading{}
	}
	return BatteryReading{Percent: percent, Available: true}
}

// Permission is the state of the directory access capability.
type Permission string

const (
	// PermissionUndetermined means the user has not been asked yet.
	PermissionUndetermined Permission = "undetermined"

	// PermissionGranted allows directory queries.
	PermissionGranted Permission = "granted"

	// PermissionDenied forbids directory queries.
	PermissionDenied Permission = "denied"
)

// IsTerminal returns true for granted or denied.
func (p Permission) IsTerminal() bool {
	return p == PermissionGranted || p == PermissionDenied
}

// String returns the string representation.
func (p Permission) String() string {
	return string(p)
}
