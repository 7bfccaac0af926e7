package driven

import "context"

// Directory is the external named-entry directory (the contact list).
type Directory interface {
	// Exists reports whether at least one entry's primary display name
	// equals name exactly (case-sensitive).
	Exists(ctx context.Context, name string) (bool, error)
}

// DirectoryAdmin manages entries for directories that support it.
type DirectoryAdmin interface {
	Directory

	// Add inserts an entry. Duplicate names are allowed, as in a real
	// address book.
	Add(ctx context.Context, name string) error

	// Remove deletes every entry with exactly this name.
	// Returns domain.ErrNotFound when nothing matched.
	Remove(ctx context.Context, name string) error

	// List returns all display names, sorted.
	List(ctx context.Context) ([]string, error)
}
