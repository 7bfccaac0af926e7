// Package manual provides keyboard-driven heading and motion sources.
// It stands in for hardware on machines without IIO sensors.
package manual

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
)

// Ensure Sensors implements the interfaces.
var (
	_ driven.HeadingSource     = (*Sensors)(nil)
	_ driven.MotionSource      = (*Sensors)(nil)
	_ driving.SimulatedSensors = (*Sensors)(nil)
)

// ShakeMagnitude is the acceleration, in m/s² along Z, emitted by Shake.
// It clears the default threshold of 12 above gravity.
const ShakeMagnitude = domain.StandardGravity + 15

// Sensors holds a simulated heading and fans samples out to every
// attached reader. Samples emitted while nobody is attached are dropped.
type Sensors struct {
	mu       sync.Mutex
	heading  float64
	headings map[chan domain.HeadingSample]struct{}
	motions  map[chan domain.MotionSample]struct{}
	now      func() time.Time
}

// New creates simulated sensors starting at initialHeading degrees.
func New(initialHeading float64) *Sensors {
	return &Sensors{
		heading:  normalize(initialHeading),
		headings: make(map[chan domain.HeadingSample]struct{}),
		motions:  make(map[chan domain.MotionSample]struct{}),
		now:      time.Now,
	}
}

// Headings attaches a reader and immediately delivers the current heading.
func (s *Sensors) Headings(ctx context.Context) (<-chan domain.HeadingSample, error) {
	ch := make(chan domain.HeadingSample, 8)

	s.mu.Lock()
	s.headings[ch] = struct{}{}
	ch <- domain.HeadingSample{Degrees: s.heading, At: s.now()}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.headings, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Motion attaches a reader. Samples arrive only when Shake is called.
func (s *Sensors) Motion(ctx context.Context) (<-chan domain.MotionSample, error) {
	ch := make(chan domain.MotionSample, 8)

	s.mu.Lock()
	s.motions[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.motions, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Rotate turns the heading by delta degrees and publishes it.
func (s *Sensors) Rotate(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heading = normalize(s.heading + delta)
	sample := domain.HeadingSample{Degrees: s.heading, At: s.now()}
	for ch := range s.headings {
		select {
		case ch <- sample:
		default: // reader is behind; the next rotation supersedes this one
		}
	}
}

// Heading returns the simulated heading in [0, 360).
func (s *Sensors) Heading() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heading
}

// Shake publishes one strong acceleration sample.
func (s *Sensors) Shake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample := domain.MotionSample{Z: ShakeMagnitude, At: s.now()}
	for ch := range s.motions {
		select {
		case ch <- sample:
		default:
		}
	}
}

func normalize(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
