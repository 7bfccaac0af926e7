package driven

import "github.com/custodia-labs/secretpass-cli/internal/core/domain"

// Battery reads the current charge level.
type Battery interface {
	// CurrentPercent returns a fresh reading on every call.
	// Implementations must not cache across calls.
	CurrentPercent() domain.BatteryReading
}
