package driven

import (
	"context"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

// PermissionGate guards directory access.
type PermissionGate interface {
	// Check returns the current permission state without prompting.
	Check() domain.Permission

	// Request asks for permission and blocks until the prompt resolves.
	// It returns exactly one of granted or denied, or ctx.Err() when the
	// prompt was abandoned.
	Request(ctx context.Context) (domain.Permission, error)
}

// Prompter asks the user a yes/no permission question.
// PermissionGate implementations delegate the interactive part to it.
type Prompter interface {
	Prompt(ctx context.Context, question string) (bool, error)
}
