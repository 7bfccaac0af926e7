package services

import (
	"math"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// ReferenceHalfWindow is half the width, in degrees, of the closed window
// around north that counts as facing the reference direction.
const ReferenceHalfWindow = 10.0

// OrientationClassifier turns compass readings into the Orientation slot.
// It is edge-triggered: it applies only when the classification differs
// from the last value it applied.
type OrientationClassifier struct {
	sink driving.ConditionSink

	mu          sync.Mutex
	lastEmitted bool
}

// NewOrientationClassifier creates a classifier writing to sink.
// The initial last-emitted value is false, matching a fresh vector.
func NewOrientationClassifier(sink driving.ConditionSink) *OrientationClassifier {
	return &OrientationClassifier{sink: sink}
}

// Observe classifies one sample. NaN and infinite readings are dropped
// and the last classification is kept.
func (c *OrientationClassifier) Observe(sample domain.HeadingSample) {
	h, ok := NormalizeHeading(sample.Degrees)
	if !ok {
		logger.Debug("orientation: dropping malformed heading %v", sample.Degrees)
		return
	}
	facing := IsReferenceDirection(h)

	c.mu.Lock()
	defer c.mu.Unlock()
	if facing == c.lastEmitted {
		return
	}
	c.lastEmitted = facing
	c.sink.Apply(domain.SlotOrientation, facing)
}

// NormalizeHeading maps any finite angle into [0, 360).
func NormalizeHeading(deg float64) (float64, bool) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, false
	}
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	// -1e-14 + 360 rounds to 360.
	if h >= 360 {
		h = 0
	}
	return h, true
}

// IsReferenceDirection reports whether a normalised heading lies in
// [350, 360] or [0, 10]. Both bounds are inclusive.
func IsReferenceDirection(h float64) bool {
	return (h >= 360-ReferenceHalfWindow && h <= 360) || (h >= 0 && h <= ReferenceHalfWindow)
}
