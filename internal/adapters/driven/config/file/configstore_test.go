package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".secretpass", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "sub"))

	assert.Error(t, err)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[ nope"), 0600))

	_, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("password.prefix", "secret"))
	require.NoError(t, store.Set("sensors.poll_ms", 200))
	require.NoError(t, store.Set("motion.threshold", 12.5))
	require.NoError(t, store.Set("ui.color", true))

	assert.Equal(t, "secret", store.GetString("password.prefix"))
	assert.Equal(t, "", store.GetString("sensors.poll_ms"))
	assert.Equal(t, 200, store.GetInt("sensors.poll_ms"))
	assert.Equal(t, 0, store.GetInt("password.prefix"))
	assert.True(t, store.GetBool("ui.color"))
	assert.False(t, store.GetBool("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("directory.target_name", "Chiburashka"))
	require.NoError(t, store.Set("motion.debounce_ms", 1000))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[directory]")
	assert.Contains(t, string(raw), "target_name = 'Chiburashka'")
	assert.Contains(t, string(raw), "[motion]")
	assert.NotContains(t, string(raw), "'directory.target_name'")
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("directory.target_name", "Chiburashka"))
	require.NoError(t, store.Set("battery.fixed_percent", 42))
	require.NoError(t, store.Set("motion.threshold", 12.5))
	require.NoError(t, store.Set("sensors.extra", []string{"a", "b"}))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "Chiburashka", reloaded.GetString("directory.target_name"))
	assert.Equal(t, 42, reloaded.GetInt("battery.fixed_percent"))
	val, ok := reloaded.Get("motion.threshold")
	require.True(t, ok)
	assert.InDelta(t, 12.5, val, 1e-9)
	assert.Equal(t, []string{"a", "b"}, reloaded.GetStringSlice("sensors.extra"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[directory]
target_name = "Gena"
permission = "grant"

[sensors]
backend = "feed"
poll_ms = 50
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "Gena", store.GetString("directory.target_name"))
	assert.Equal(t, "grant", store.GetString("directory.permission"))
	assert.Equal(t, "feed", store.GetString("sensors.backend"))
	assert.Equal(t, 50, store.GetInt("sensors.poll_ms"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Set_InvalidKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".motion", "motion."} {
		assert.Error(t, store.Set(key, 1), "key %q", key)
	}
}

func TestConfigStore_Set_TableConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("motion", "fast"))

	assert.Error(t, store.Set("motion.threshold", 3))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("password.prefix", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("load.key"+string(rune('a'+id)), id)
			_ = store.GetInt("load.key" + string(rune('a'+id)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, i, store.GetInt("load.key"+string(rune('a'+i))))
	}
}

func TestNestMap_Inverse(t *testing.T) {
	flat := map[string]any{"a.b.c": 1, "a.d": "x", "e": true}

	nested, err := nestMap(flat)

	require.NoError(t, err)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
