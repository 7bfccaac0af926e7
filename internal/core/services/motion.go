package services

import (
	"math"
	"sync"
	"time"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// ShakeDetectorState is mutated only when a sample qualifies.
type ShakeDetectorState struct {
	// LastQualifying is nil until the first qualifying sample.
	LastQualifying *time.Time
}

// MotionClassifier turns accelerometer readings into the Motion slot.
// Once Motion is true it is never set back to false for the session.
type MotionClassifier struct {
	sink      driving.ConditionSink
	threshold float64
	debounce  time.Duration

	mu    sync.Mutex
	state ShakeDetectorState
}

// NewMotionClassifier creates a classifier writing to sink.
func NewMotionClassifier(sink driving.ConditionSink, cfg domain.MotionSettings) *MotionClassifier {
	return &MotionClassifier{
		sink:      sink,
		threshold: cfg.Threshold,
		debounce:  cfg.Debounce,
	}
}

// Observe classifies one sample. Samples with non-finite components
// are dropped.
func (c *MotionClassifier) Observe(sample domain.MotionSample) {
	excess, ok := ExcessAcceleration(sample)
	if !ok {
		logger.Debug("motion: dropping malformed sample %+v", sample)
		return
	}
	if excess <= c.threshold {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if last := c.state.LastQualifying; last != nil && sample.At.Sub(*last) < c.debounce {
		return
	}
	at := sample.At
	c.state.LastQualifying = &at

	if !c.sink.Snapshot().Vector.Get(domain.SlotMotion) {
		logger.Debug("motion: qualifying shake, excess %.2f m/s²", excess)
		c.sink.Apply(domain.SlotMotion, true)
	}
}

// State returns a copy of the detector state.
func (c *MotionClassifier) State() ShakeDetectorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.LastQualifying == nil {
		return ShakeDetectorState{}
	}
	at := *c.state.LastQualifying
	return ShakeDetectorState{LastQualifying: &at}
}

// ExcessAcceleration returns the sample magnitude minus standard gravity.
func ExcessAcceleration(sample domain.MotionSample) (float64, bool) {
	for _, v := range []float64{sample.X, sample.Y, sample.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
	}
	m := math.Sqrt(sample.X*sample.X + sample.Y*sample.Y + sample.Z*sample.Z)
	return m - domain.StandardGravity, true
}
