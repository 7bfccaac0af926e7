package driven

import (
	"context"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// HeadingSource streams compass readings.
// Registration with the underlying sensor lasts until ctx is done,
// at which point the returned channel is closed.
type HeadingSource interface {
	// Headings attaches to the sensor and returns its sample stream.
	// Returns domain.ErrSourceUnavailable when the device has no compass.
	Headings(ctx context.Context) (<-chan domain.HeadingSample, error)
}

// MotionSource streams accelerometer readings with increasing timestamps.
type MotionSource interface {
	// Motion attaches to the sensor and returns its sample stream.
	// Returns domain.ErrSourceUnavailable when the device has no accelerometer.
	Motion(ctx context.Context) (<-chan domain.MotionSample, error)
}
