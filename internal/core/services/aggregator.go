package services

import (
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure ConditionAggregator implements the interface.
var _ driving.ConditionBoard = (*ConditionAggregator)(nil)

// ConditionAggregator owns the condition vector. Apply is the only
// mutation path; the overwrite, gate recomputation and publish happen
// under one lock so no observer ever sees a half-applied update.
type ConditionAggregator struct {
	mu        sync.Mutex
	sessionID string
	last      domain.Snapshot
	observers []subscription
	nextSubID int
}

type subscription struct {
	id       int
	observer driven.Observer
}

// NewConditionAggregator creates an aggregator with every slot false.
func NewConditionAggregator(sessionID string, observers ...driven.Observer) *ConditionAggregator {
	a := &ConditionAggregator{
		sessionID: sessionID,
		last:      InitialSnapshot(sessionID),
	}
	for _, o := range observers {
		if o != nil {
			a.observers = append(a.observers, subscription{id: a.nextSubID, observer: o})
			a.nextSubID++
		}
	}
	return a
}

// InitialSnapshot returns the all-false vector with a closed gate.
func InitialSnapshot(sessionID string) domain.Snapshot {
	return domain.Snapshot{
		SessionID: sessionID,
		Changed:   domain.NoSlot,
	}
}

// Apply overwrites slot, recomputes the gate and publishes the result.
// Values equal to the current one are still published.
func (a *ConditionAggregator) Apply(slot domain.ConditionSlot, value bool) {
	if !slot.IsValid() {
		logger.Warn("session %s: ignoring update for unknown slot %d", a.sessionID, int(slot))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	vector := a.last.Vector.With(slot, value)
	snap := domain.Snapshot{
		SessionID: a.sessionID,
		Seq:       a.last.Seq + 1,
		Vector:    vector,
		Gate:      vector.Gate(),
		Changed:   slot,
	}
	if a.last.Vector.Get(slot) != value {
		logger.Debug("session %s: %s -> %t (gate=%t)", a.sessionID, slot, value, snap.Gate)
	}
	a.last = snap

	for _, sub := range a.observers {
		sub.observer.Publish(snap)
	}
}

// Snapshot returns the most recently published snapshot.
func (a *ConditionAggregator) Snapshot() domain.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Subscribe attaches an observer and immediately delivers the current
// snapshot to it, so late subscribers start from a consistent state.
func (a *ConditionAggregator) Subscribe(observer driven.Observer) func() {
	if observer == nil {
		return func() {}
	}

	a.mu.Lock()
	id := a.nextSubID
	a.nextSubID++
	a.observers = append(a.observers, subscription{id: id, observer: observer})
	observer.Publish(a.last)
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, sub := range a.observers {
			if sub.id == id {
				a.observers = append(a.observers[:i], a.observers[i+1:]...)
				return
			}
		}
	}
}
