package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// mockSession is a mock implementation of driving.SessionService.
type mockSession struct {
	mu        sync.Mutex
	snapshot  domain.Snapshot
	passwords []string
	expected  string
	started   int
	closed    int
	paused    int
	resumeErr error
	loginErr  error
	finished  bool
}

func newMockSession() *mockSession {
	return &mockSession{
		snapshot: domain.Snapshot{SessionID: "sess-1", Changed: domain.NoSlot},
		expected: "secret42",
	}
}

func (m *mockSession) ID() string { return "sess-1" }

func (m *mockSession) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
	return nil
}

func (m *mockSession) Resume() error { return m.resumeErr }

func (m *mockSession) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused++
}

func (m *mockSession) SubmitPassword(input string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passwords = append(m.passwords, input)
	m.snapshot.Seq++
	m.snapshot.Vector = m.snapshot.Vector.With(domain.SlotPasswordMatch, input == m.expected)
	m.snapshot.Gate = m.snapshot.Vector.Gate()
}

func (m *mockSession) PasswordRule() (string, bool) { return m.expected, true }

func (m *mockSession) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *mockSession) Subscribe(o driven.Observer) func() {
	o.Publish(m.Snapshot())
	return func() {}
}

func (m *mockSession) Login() error {
	if m.loginErr != nil {
		return m.loginErr
	}
	if !m.Snapshot().Gate {
		return domain.ErrGateClosed
	}
	m.finished = true
	return nil
}

func (m *mockSession) Finished() bool { return m.finished }

func (m *mockSession) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

// mockSensors is a mock implementation of driving.SimulatedSensors.
type mockSensors struct {
	heading float64
	shakes  int
}

func (m *mockSensors) Rotate(delta float64) { m.heading += delta }
func (m *mockSensors) Heading() float64     { return m.heading }
func (m *mockSensors) Shake()               { m.shakes++ }

// mockResponder is a mock implementation of PermissionResponder.
type mockResponder struct {
	question string
	answers  []bool
}

func (m *mockResponder) Pending() (string, bool) { return m.question, m.question != "" }

func (m *mockResponder) Answer(allow bool) error {
	if m.question == "" {
		return domain.ErrNotFound
	}
	m.question = ""
	m.answers = append(m.answers, allow)
	return nil
}
