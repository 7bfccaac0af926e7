package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure snapshotFeed implements the interface.
var _ driven.Observer = (*snapshotFeed)(nil)

// snapshotFeed bridges the aggregator to the Bubbletea event loop.
// Publish never blocks: a snapshot not yet read is replaced by the newer
// one, so the UI may skip intermediate states but always sees the latest.
type snapshotFeed struct {
	ch chan domain.Snapshot
}

func newSnapshotFeed() *snapshotFeed {
	return &snapshotFeed{ch: make(chan domain.Snapshot, 1)}
}

// Publish implements driven.Observer. Publishes are serialized by the
// aggregator, so after draining the slot the send cannot fail.
func (f *snapshotFeed) Publish(snap domain.Snapshot) {
	select {
	case f.ch <- snap:
		return
	default:
	}
	select {
	case <-f.ch:
	default:
	}
	select {
	case f.ch <- snap:
	default:
	}
}

// wait returns a command delivering the next snapshot.
func (f *snapshotFeed) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-f.ch:
			return messages.SnapshotPublished{Snapshot: snap}
		case <-ctx.Done():
			return nil
		}
	}
}

// promptFeed carries permission questions from the prompter goroutine.
type promptFeed struct {
	ch chan string
}

func newPromptFeed() *promptFeed {
	return &promptFeed{ch: make(chan string, 1)}
}

// notify is handed to the deferred prompter. At most one prompt is
// outstanding, so a full slot means the question is already queued.
func (f *promptFeed) notify(question string) {
	select {
	case f.ch <- question:
	default:
	}
}

func (f *promptFeed) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case q := <-f.ch:
			return messages.PermissionRequested{Question: q}
		case <-ctx.Done():
			return nil
		}
	}
}
