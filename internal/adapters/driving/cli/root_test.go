package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/battery"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/permission"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/sensors/manual"
	"github.com/custodia-labs/secretpass-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
	"github.com/custodia-labs/secretpass-cli/internal/core/services"
)

// setupTestServices installs a builder backed by in-memory adapters,
// a fixed 42% battery and a granted permission.
func setupTestServices(t *testing.T, contacts ...string) *Services {
	t.Helper()

	store := memory.NewConfigStore()
	directory := memory.NewDirectory(contacts...)
	sensors := manual.New(180)

	session, err := services.NewSession(services.SessionConfig{}, services.SessionDeps{
		Headings:    sensors,
		Motion:      sensors,
		Directory:   directory,
		Permissions: permission.NewGate(domain.PermissionPolicyGrant, nil),
		Battery:     battery.Fixed(42),
	})
	require.NoError(t, err)

	svc := &Services{
		Session:  session,
		Settings: services.NewSettingsService(store),
		Contacts: directory,
		Sensors:  sensors,
		Close:    func() error { return nil },
	}

	SetBuilder(func(Options) (*Services, error) { return svc, nil })
	t.Cleanup(func() { SetBuilder(nil) })
	return svc
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		statusJSON, statusWatch = false, 0
		passwordHint = false
		batteryPercent = -1
		ephemeral = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "log-file", "ephemeral", "battery"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "-1", rootCmd.PersistentFlags().Lookup("battery").DefValue)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "status", "password", "contacts", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestBuildServices_NoBuilder(t *testing.T) {
	SetBuilder(nil)

	_, err := execute(t, nil, "contacts", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestBuildServices_PassesFlags(t *testing.T) {
	var got Options
	SetBuilder(func(opts Options) (*Services, error) {
		got = opts
		return &Services{Contacts: memory.NewDirectory()}, nil
	})
	t.Cleanup(func() { SetBuilder(nil) })

	_, err := execute(t, nil, "contacts", "list", "--ephemeral", "--battery", "30")

	require.NoError(t, err)
	assert.True(t, got.Ephemeral)
	assert.Equal(t, 30, got.Battery)
	assert.Equal(t, PromptTerminal, got.Prompt)
}

func TestBuildServices_BatteryOutOfRange(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, nil, "contacts", "list", "--battery", "101")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 100")
}
