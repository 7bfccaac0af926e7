package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driving"
	"github.com/custodia-labs/secretpass-cli/internal/logger"
)

// DirectoryLookup resolves the DirectoryMatch slot behind a permission
// gate. At most one prompt or query is outstanding at a time; starting a
// new one cancels the previous one and its late result is discarded.
type DirectoryLookup struct {
	sink      driving.ConditionSink
	directory driven.Directory
	gate      driven.PermissionGate
	target    string

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDirectoryLookup creates a lookup for target.
func NewDirectoryLookup(
	sink driving.ConditionSink,
	directory driven.Directory,
	gate driven.PermissionGate,
	target string,
) *DirectoryLookup {
	return &DirectoryLookup{
		sink:      sink,
		directory: directory,
		gate:      gate,
		target:    target,
	}
}

// Activate runs the first-activation protocol: resolve immediately when
// permission is already granted, otherwise prompt once. Denial applies
// false and never touches the directory. Activate does not block.
func (l *DirectoryLookup) Activate(ctx context.Context) {
	if l.gate.Check() == domain.PermissionGranted {
		l.startResolve(ctx)
		return
	}

	gen, runCtx := l.supersede(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		perm, err := l.gate.Request(runCtx)
		if err != nil {
			logger.Debug("directory: permission prompt abandoned: %v", err)
			return
		}

		switch perm {
		case domain.PermissionGranted:
			ok, err := l.directory.Exists(runCtx, l.target)
			l.commit(gen, ok, err)
		default:
			logger.Info("directory: permission %s, %s stays false", perm, domain.SlotDirectoryMatch)
			l.commit(gen, false, nil)
		}
	}()
}

// Resume re-resolves when permission is already granted. It never prompts.
func (l *DirectoryLookup) Resume(ctx context.Context) {
	if l.gate.Check() != domain.PermissionGranted {
		return
	}
	l.startResolve(ctx)
}

// Resolve queries the directory synchronously and applies the result.
// A query error applies false.
func (l *DirectoryLookup) Resolve(ctx context.Context) (bool, error) {
	gen, runCtx := l.supersede(ctx)
	ok, err := l.directory.Exists(runCtx, l.target)
	l.commit(gen, ok, err)
	if err != nil {
		return false, fmt.Errorf("resolving %q: %w", l.target, err)
	}
	return ok, nil
}

// Wait blocks until every asynchronous prompt or query has returned.
func (l *DirectoryLookup) Wait() {
	l.wg.Wait()
}

// Close cancels any outstanding prompt or query and waits for it.
func (l *DirectoryLookup) Close() {
	l.mu.Lock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *DirectoryLookup) startResolve(ctx context.Context) {
	gen, runCtx := l.supersede(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ok, err := l.directory.Exists(runCtx, l.target)
		l.commit(gen, ok, err)
	}()
}

// supersede cancels the outstanding operation and starts a new generation.
func (l *DirectoryLookup) supersede(ctx context.Context) (uint64, context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return l.gen, runCtx
}

// commit applies a result if its generation is still current.
func (l *DirectoryLookup) commit(gen uint64, ok bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("directory: lookup for %q failed: %v", l.target, err)
		ok = false
	}
	l.sink.Apply(domain.SlotDirectoryMatch, ok)
}
