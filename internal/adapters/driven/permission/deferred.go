package permission

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure Deferred implements the interface.
var _ driven.Prompter = (*Deferred)(nil)

// ErrNoPendingPrompt is returned by Answer when nothing is waiting.
var ErrNoPendingPrompt = errors.New("no permission prompt is pending")

// Deferred is a prompter answered from elsewhere: a TUI dialog or an MCP
// tool call. Prompt blocks until Answer is called or ctx is done.
type Deferred struct {
	mu       sync.Mutex
	question string
	reply    chan bool
	notify   func(question string)
}

// NewDeferred creates a prompter. notify, if set, is called without
// locks held whenever a new prompt starts waiting.
func NewDeferred(notify func(question string)) *Deferred {
	return &Deferred{notify: notify}
}

// SetNotify replaces the prompt callback.
func (d *Deferred) SetNotify(notify func(question string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notify = notify
}

// Prompt waits for an answer.
func (d *Deferred) Prompt(ctx context.Context, question string) (bool, error) {
	reply := make(chan bool, 1)

	d.mu.Lock()
	d.question = question
	d.reply = reply
	notify := d.notify
	d.mu.Unlock()

	if notify != nil {
		notify(question)
	}

	defer func() {
		d.mu.Lock()
		if d.reply == reply {
			d.question, d.reply = "", nil
		}
		d.mu.Unlock()
	}()

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Pending returns the question currently waiting for an answer.
func (d *Deferred) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.question, d.reply != nil
}

// Answer resolves the pending prompt.
func (d *Deferred) Answer(allow bool) error {
	d.mu.Lock()
	reply := d.reply
	d.question, d.reply = "", nil
	d.mu.Unlock()

	if reply == nil {
		return ErrNoPendingPrompt
	}
	reply <- allow
	return nil
}
