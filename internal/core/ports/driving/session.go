package driving

import (
	"context"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// SessionService drives one gated-login session from start to success.
type SessionService interface {
	// ID returns the session identifier.
	ID() string

	// Start publishes the initial snapshot, runs the first directory
	// activation and attaches sensors.
	Start(ctx context.Context) error

	// Resume re-attaches sensors and re-resolves the directory when
	// permission is already granted. Work it starts is bound to the
	// context given to Start.
	Resume() error

	// Pause detaches sensors.
	Pause()

	// SubmitPassword handles one edit of the password field.
	SubmitPassword(input string)

	// PasswordRule describes the current expected password, e.g. "secret73".
	// The bool is false when the battery reading is unavailable.
	PasswordRule() (string, bool)

	// Snapshot returns the current vector and gate.
	Snapshot() domain.Snapshot

	// Subscribe attaches an observer and delivers the current snapshot
	// to it. The returned function detaches it.
	Subscribe(observer driven.Observer) (unsubscribe func())

	// Login performs the gated action. Returns domain.ErrGateClosed
	// unless every condition holds.
	Login() error

	// Finished reports whether Login has succeeded.
	Finished() bool

	// Close detaches everything and cancels pending prompts.
	Close()
}

// SimulatedSensors is implemented by sensor backends that can be driven
// from the UI instead of hardware.
type SimulatedSensors interface {
	// Rotate turns the simulated heading by delta degrees.
	Rotate(delta float64)

	// Heading returns the simulated heading in degrees.
	Heading() float64

	// Shake emits one strong acceleration sample.
	Shake()
}
