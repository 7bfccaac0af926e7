package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func TestBuild_Ephemeral(t *testing.T) {
	svc, err := build(cli.Options{Ephemeral: true, Battery: -1, Prompt: cli.PromptDeferred})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.NotNil(t, svc.Session)
	assert.NotNil(t, svc.Settings)
	assert.NotNil(t, svc.Contacts)
	assert.NotNil(t, svc.Sensors, "manual backend exposes simulated sensors")
	assert.NotNil(t, svc.Prompts, "deferred mode exposes the prompt responder")
	assert.Empty(t, svc.ConfigDir)
	assert.InDelta(t, 180.0, svc.Sensors.Heading(), 1e-9, "simulated compass starts away from north")
}

func TestBuild_TerminalPromptHasNoResponder(t *testing.T) {
	svc, err := build(cli.Options{Ephemeral: true, Battery: 10, Prompt: cli.PromptTerminal})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.Nil(t, svc.Prompts)
}

func TestBuild_BatteryOverrideDerivesPassword(t *testing.T) {
	svc, err := build(cli.Options{Ephemeral: true, Battery: 42})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	svc.Session.SubmitPassword("secret42")
	assert.True(t, svc.Session.Snapshot().Vector.Get(domain.SlotPasswordMatch))
}

func TestBuild_ConfigDirCreatesFiles(t *testing.T) {
	dir := t.TempDir()

	svc, err := build(cli.Options{ConfigDir: dir, Battery: 50, Prompt: cli.PromptTerminal})
	require.NoError(t, err)

	assert.Equal(t, dir, svc.ConfigDir)
	require.NoError(t, svc.Contacts.Add(context.Background(), "Alice"))
	require.NoError(t, svc.Close())

	_, err = os.Stat(filepath.Join(dir, sqlite.DefaultFileName))
	assert.NoError(t, err)
}

func TestBuild_ContactsPersistAcrossBuilds(t *testing.T) {
	dir := t.TempDir()

	first, err := build(cli.Options{ConfigDir: dir, Battery: 50, Prompt: cli.PromptTerminal})
	require.NoError(t, err)
	require.NoError(t, first.Contacts.Add(context.Background(), "Tom Hanks"))
	require.NoError(t, first.Close())

	second, err := build(cli.Options{ConfigDir: dir, Battery: 50, Prompt: cli.PromptTerminal})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	names, err := second.Contacts.List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, "Tom Hanks")
}

func TestBuild_FeedBackendRequiresPath(t *testing.T) {
	t.Setenv("SECRETPASS_SENSORS_BACKEND", "feed")

	_, err := build(cli.Options{Ephemeral: true, Battery: 50})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed_path")
}

func TestBuild_SysfsBackendHasNoSimulatedSensors(t *testing.T) {
	t.Setenv("SECRETPASS_SENSORS_BACKEND", "sysfs")

	svc, err := build(cli.Options{Ephemeral: true, Battery: 50})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.Nil(t, svc.Sensors)
}

func TestBuild_SessionStartsAndCloses(t *testing.T) {
	svc, err := build(cli.Options{Ephemeral: true, Battery: 50})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Session.Start(ctx))

	snap := svc.Session.Snapshot()
	assert.NotEmpty(t, snap.SessionID)
	assert.False(t, snap.Gate)

	// Give the replayed heading time to arrive; it must not satisfy orientation.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, svc.Session.Snapshot().Vector.Get(domain.SlotOrientation))

	svc.Session.Close()
	require.NoError(t, svc.Close())
}
