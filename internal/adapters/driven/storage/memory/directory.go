package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/ports/driven"
)

// Ensure Directory implements the interface.
var _ driven.DirectoryAdmin = (*Directory)(nil)

// Directory is an in-memory contact directory.
// Names are compared exactly, so "chiburashka" does not match "Chiburashka".
type Directory struct {
	mu      sync.RWMutex
	entries []string
}

// NewDirectory creates a directory holding names.
func NewDirectory(names ...string) *Directory {
	d := &Directory{}
	d.entries = append(d.entries, names...)
	return d
}

// Exists reports whether any entry equals name.
func (d *Directory) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.entries {
		if e == name {
			return true, nil
		}
	}
	return false, nil
}

// Add appends an entry. Duplicates are kept.
func (d *Directory) Add(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, name)
	return nil
}

// Remove deletes every entry equal to name.
func (d *Directory) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.entries[:0]
	for _, e := range d.entries {
		if e != name {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(d.entries) {
		return domain.ErrNotFound
	}
	d.entries = kept
	return nil
}

// List returns all names, sorted.
func (d *Directory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	sort.Strings(out)
	return out, nil
}
