package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contacts.db")

	store, err := NewStore(path)

	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestNewStore_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")

	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, filepath.Join(home, ".secretpass", "contacts.db"), store.Path())
}

func TestNewStore_InMemory(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Add(context.Background(), "Chiburashka"))
	ok, err := store.Exists(context.Background(), "Chiburashka")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(context.Background(), "Gena"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	names, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gena"}, names)
}

func TestStore_Exists_CaseSensitive(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "Chiburashka"))

	tests := map[string]bool{
		"Chiburashka":  true,
		"chiburashka":  false,
		"CHIBURASHKA":  false,
		"Chiburashka ": false,
		"Chiburash":    false,
		"":             false,
	}
	for name, want := range tests {
		ok, err := store.Exists(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "name %q", name)
	}
}

func TestStore_AddRemoveList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "Gena"))
	require.NoError(t, store.Add(ctx, "Chiburashka"))
	require.NoError(t, store.Add(ctx, "Gena"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chiburashka", "Gena", "Gena"}, names)

	require.NoError(t, store.Remove(ctx, "Gena"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chiburashka"}, names)

	assert.ErrorIs(t, store.Remove(ctx, "Gena"), domain.ErrNotFound)
	assert.ErrorIs(t, store.Add(ctx, "  "), domain.ErrInvalidInput)
}

func TestStore_Exists_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Exists(ctx, "Chiburashka")

	assert.Error(t, err)
}

func TestStore_Migrate_BadSQL(t *testing.T) {
	store := setupTestStore(t)

	err := store.migrate(fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE (")},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")
}

func TestStore_Migrate_SkipsAppliedAndUnversioned(t *testing.T) {
	store := setupTestStore(t)

	err := store.migrate(fstest.MapFS{
		"001_contacts.up.sql": {Data: []byte("CREATE TABLE (")},
		"readme.up.sql":       {Data: []byte("nonsense")},
	})

	assert.NoError(t, err)
}
