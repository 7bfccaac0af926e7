package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// --- Mock implementations for condition pipeline testing ---

// recordingSink implements driving.ConditionSink and records every Apply.
type recordingSink struct {
	mu      sync.Mutex
	vector  domain.ConditionVector
	applied []appliedUpdate
}

type appliedUpdate struct {
	slot  domain.ConditionSlot
	value bool
}

func (s *recordingSink) Apply(slot domain.ConditionSlot, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vector = s.vector.With(slot, value)
	s.applied = append(s.applied, appliedUpdate{slot: slot, value: value})
}

func (s *recordingSink) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot{Vector: s.vector, Gate: s.vector.Gate(), Changed: domain.NoSlot}
}

func (s *recordingSink) updates() []appliedUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]appliedUpdate, len(s.applied))
	copy(out, s.applied)
	return out
}

// mockDirectory implements driven.Directory.
type mockDirectory struct {
	mu      sync.Mutex
	names   map[string]bool
	err     error
	calls   int
	block   chan struct{}
	entered chan struct{}
}

func newMockDirectory(names ...string) *mockDirectory {
	m := &mockDirectory{names: make(map[string]bool)}
	for _, n := range names {
		m.names[n] = true
	}
	return m
}

func (m *mockDirectory) Exists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	m.calls++
	block, entered := m.block, m.entered
	m.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.names[name], nil
}

func (m *mockDirectory) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockGate implements driven.PermissionGate.
type mockGate struct {
	mu       sync.Mutex
	state    domain.Permission
	answer   domain.Permission
	requests int
}

func newMockGate(state, answer domain.Permission) *mockGate {
	return &mockGate{state: state, answer: answer}
}

func (g *mockGate) Check() domain.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *mockGate) Request(_ context.Context) (domain.Permission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests++
	g.state = g.answer
	return g.answer, nil
}

func (g *mockGate) requestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests
}

// mockBattery implements driven.Battery.
type mockBattery struct {
	mu      sync.Mutex
	reading domain.BatteryReading
	reads   int
}

func (b *mockBattery) CurrentPercent() domain.BatteryReading {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	return b.reading
}

func (b *mockBattery) set(reading domain.BatteryReading) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reading = reading
}

// chanHeadings implements driven.HeadingSource over a test-owned channel.
type chanHeadings struct {
	mu       sync.Mutex
	ch       chan domain.HeadingSample
	err      error
	attaches int
}

func newChanHeadings() *chanHeadings {
	return &chanHeadings{ch: make(chan domain.HeadingSample)}
}

func (h *chanHeadings) Headings(ctx context.Context) (<-chan domain.HeadingSample, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	h.attaches++
	in := h.ch
	out := make(chan domain.HeadingSample)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-in:
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (h *chanHeadings) attachCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attaches
}

// chanMotion implements driven.MotionSource over a test-owned channel.
type chanMotion struct {
	ch  chan domain.MotionSample
	err error
}

func newChanMotion() *chanMotion {
	return &chanMotion{ch: make(chan domain.MotionSample)}
}

func (m *chanMotion) Motion(ctx context.Context) (<-chan domain.MotionSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(chan domain.MotionSample)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-m.ch:
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
