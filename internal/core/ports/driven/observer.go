package driven

import "github.com/custodia-labs/secretpass-cli/internal/core/domain"

// Observer receives every published snapshot, in publish order.
// Publish is called while the aggregator holds its lock, so
// implementations must return promptly and must not call back into it.
type Observer interface {
	Publish(snapshot domain.Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(domain.Snapshot)

// Publish calls f.
func (f ObserverFunc) Publish(snapshot domain.Snapshot) {
	f(snapshot)
}
