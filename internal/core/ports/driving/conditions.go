package driving

import (
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// ConditionSink is the single writer of the condition vector.
// Every producer calls Apply; nothing else mutates the vector.
type ConditionSink interface {
	// Apply overwrites one slot, recomputes the gate and publishes.
	// It never blocks on I/O and never fails.
	Apply(slot domain.ConditionSlot, value bool)

	// Snapshot returns the most recently published snapshot.
	Snapshot() domain.Snapshot
}

// ConditionBoard is a ConditionSink that also accepts subscribers.
type ConditionBoard interface {
	ConditionSink

	// Subscribe attaches an observer. The returned function detaches it.
	Subscribe(observer driven.Observer) (unsubscribe func())
}
