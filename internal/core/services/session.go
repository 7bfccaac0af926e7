package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// SessionConfig holds the settings a session needs.
type SessionConfig struct {
	// ID identifies the session. Empty generates a random UUID.
	ID string

	// TargetName is the directory entry that must exist.
	TargetName string

	// Motion configures shake detection.
	Motion domain.MotionSettings

	// PasswordPrefix is prepended to the battery percentage.
	PasswordPrefix string
}

// SessionDeps holds the driven ports a session talks to.
// Headings and Motion may be nil; their slots then stay false.
type SessionDeps struct {
	Headings    driven.HeadingSource
	Motion      driven.MotionSource
	Directory   driven.Directory
	Permissions driven.PermissionGate
	Battery     driven.Battery
	Observers   []driven.Observer
}

// Session wires the producers to one aggregator and follows the
// foreground lifecycle: sensors are attached while resumed and detached
// while paused. After a successful Login nothing reaches the aggregator.
type Session struct {
	id       string
	board    *ConditionAggregator
	headings driven.HeadingSource
	motion   driven.MotionSource

	orientation *OrientationClassifier
	shake       *MotionClassifier
	lookup      *DirectoryLookup
	password    *DerivedPasswordValidator

	finished atomic.Bool

	mu           sync.Mutex
	ctx          context.Context
	started      bool
	sensorCancel context.CancelFunc
	sensors      *errgroup.Group
}

// NewSession creates a session. Directory, Permissions and Battery are required.
func NewSession(cfg SessionConfig, deps SessionDeps) (*Session, error) {
	if deps.Directory == nil || deps.Permissions == nil || deps.Battery == nil {
		return nil, fmt.Errorf("creating session: directory, permissions and battery are required: %w",
			domain.ErrInvalidInput)
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	defaults := domain.DefaultAppSettings()
	if cfg.TargetName == "" {
		cfg.TargetName = defaults.Directory.TargetName
	}
	if cfg.Motion.Threshold <= 0 {
		cfg.Motion.Threshold = defaults.Motion.Threshold
	}
	if cfg.Motion.Debounce <= 0 {
		cfg.Motion.Debounce = defaults.Motion.Debounce
	}

	s := &Session{
		id:       cfg.ID,
		board:    NewConditionAggregator(cfg.ID, deps.Observers...),
		headings: deps.Headings,
		motion:   deps.Motion,
	}
	s.orientation = NewOrientationClassifier(s)
	s.shake = NewMotionClassifier(s, cfg.Motion)
	s.lookup = NewDirectoryLookup(s, deps.Directory, deps.Permissions, cfg.TargetName)
	s.password = NewDerivedPasswordValidator(s, deps.Battery, cfg.PasswordPrefix)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Subscribe attaches an observer to the aggregator.
func (s *Session) Subscribe(observer driven.Observer) func() {
	return s.board.Subscribe(observer)
}

// Apply forwards producer updates to the aggregator until the session
// finishes. Producers hold the session, not the aggregator.
func (s *Session) Apply(slot domain.ConditionSlot, value bool) {
	if s.finished.Load() {
		return
	}
	s.board.Apply(slot, value)
}

// Snapshot returns the current vector and gate.
func (s *Session) Snapshot() domain.Snapshot {
	return s.board.Snapshot()
}

// Start runs the first directory activation and attaches sensors.
// ctx bounds every background operation of the session.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.finished.Load() {
		s.mu.Unlock()
		return domain.ErrSessionFinished
	}
	if s.started {
		s.mu.Unlock()
		return nil // Already running
	}
	s.started = true
	s.ctx = ctx
	s.mu.Unlock()

	logger.Section("Session " + s.id)
	logger.Info("session %s: %s has no source and stays false", s.id, domain.SlotAmbient)
	s.lookup.Activate(ctx)
	s.attachSensors()
	return nil
}

// Resume re-attaches sensors and re-resolves the directory if permitted.
func (s *Session) Resume() error {
	s.mu.Lock()
	started, ctx := s.started, s.ctx
	s.mu.Unlock()

	if s.finished.Load() {
		return domain.ErrSessionFinished
	}
	if !started {
		return domain.ErrSessionNotStarted
	}

	logger.Debug("session %s: resumed", s.id)
	s.attachSensors()
	s.lookup.Resume(ctx)
	return nil
}

// Pause detaches sensors and waits for their readers to stop.
func (s *Session) Pause() {
	s.mu.Lock()
	cancel, group := s.sensorCancel, s.sensors
	s.sensorCancel, s.sensors = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	logger.Debug("session %s: paused", s.id)
	cancel()
	if err := group.Wait(); err != nil {
		logger.Warn("session %s: sensor reader stopped: %v", s.id, err)
	}
}

// SubmitPassword handles one edit of the password field.
func (s *Session) SubmitPassword(input string) {
	if s.finished.Load() {
		return
	}
	s.password.Check(input)
}

// PasswordRule returns the password that would be accepted right now.
func (s *Session) PasswordRule() (string, bool) {
	return s.password.Expected()
}

// Login performs the gated action.
func (s *Session) Login() error {
	s.mu.Lock()
	if s.finished.Load() {
		s.mu.Unlock()
		return domain.ErrSessionFinished
	}
	if !s.board.Snapshot().Gate {
		s.mu.Unlock()
		return domain.ErrGateClosed
	}
	s.finished.Store(true)
	s.mu.Unlock()

	logger.Info("session %s: gate open, login accepted", s.id)
	s.Close()
	return nil
}

// Finished reports whether Login has succeeded.
func (s *Session) Finished() bool {
	return s.finished.Load()
}

// Close detaches sensors and cancels any pending directory work.
func (s *Session) Close() {
	s.Pause()
	s.lookup.Close()
}

// WaitDirectory blocks until outstanding directory work has returned.
func (s *Session) WaitDirectory() {
	s.lookup.Wait()
}

func (s *Session) attachSensors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sensorCancel != nil || s.finished.Load() {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	group, gctx := errgroup.WithContext(ctx)

	if s.headings != nil {
		if ch, err := s.headings.Headings(gctx); err != nil {
			logger.Warn("session %s: compass unavailable, %s stays false: %v", s.id, domain.SlotOrientation, err)
		} else {
			group.Go(func() error {
				for sample := range ch {
					s.orientation.Observe(sample)
				}
				return nil
			})
		}
	}

	if s.motion != nil {
		if ch, err := s.motion.Motion(gctx); err != nil {
			logger.Warn("session %s: accelerometer unavailable, %s stays false: %v", s.id, domain.SlotMotion, err)
		} else {
			group.Go(func() error {
				for sample := range ch {
					s.shake.Observe(sample)
				}
				return nil
			})
		}
	}

	s.sensorCancel = cancel
	s.sensors = group
}
