// Package permission implements the contact directory permission gate and
// the prompters it asks through.
package permission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// Ensure Gate implements the interface.
var _ driven.PermissionGate = (*Gate)(nil)

// Question is what the user is asked.
const Question = "Allow SecretPass to read your contacts?"

// Gate remembers the answer for the lifetime of the process, like a
// platform permission that is granted once per install.
type Gate struct {
	policy   domain.PermissionPolicy
	prompter driven.Prompter

	mu    sync.Mutex
	state domain.Permission
}

// NewGate creates a gate. The prompter is used only under the prompt policy;
// without one, prompts are answered with denied.
func NewGate(policy domain.PermissionPolicy, prompter driven.Prompter) *Gate {
	state := domain.PermissionUndetermined
	if policy == domain.PermissionPolicyGrant {
		state = domain.PermissionGranted
	}
	return &Gate{policy: policy, prompter: prompter, state: state}
}

// Check returns the current state without prompting.
func (g *Gate) Check() domain.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Request resolves the permission, prompting at most once. A prompt that
// fails resolves to denied. Only a cancelled prompt leaves the state
// undetermined so it can be asked again.
func (g *Gate) Request(ctx context.Context) (domain.Permission, error) {
	if p := g.Check(); p.IsTerminal() {
		return p, nil
	}

	var answer domain.Permission
	switch {
	case g.policy == domain.PermissionPolicyDeny:
		answer = domain.PermissionDenied
	case g.prompter == nil:
		logger.Warn("permission: no prompter available, denying contact access")
		answer = domain.PermissionDenied
	default:
		ok, err := g.prompter.Prompt(ctx, Question)
		switch {
		case err != nil && abandoned(ctx, err):
			return domain.PermissionUndetermined, fmt.Errorf("permission prompt: %w", err)
		case err != nil:
			logger.Warn("permission: prompt failed, denying contact access: %v", err)
			answer = domain.PermissionDenied
		case ok:
			answer = domain.PermissionGranted
		default:
			answer = domain.PermissionDenied
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	// A concurrent prompt may have finished first; its answer stands.
	if !g.state.IsTerminal() {
		g.state = answer
	}
	logger.Debug("permission: contacts %s", g.state)
	return g.state, nil
}

// abandoned reports whether a prompt error came from ctx ending rather
// than from the prompter itself.
func abandoned(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
