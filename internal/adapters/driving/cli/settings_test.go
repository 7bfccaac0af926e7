package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Target name: Chiburashka")
	assert.Contains(t, out, "Permission: prompt")
	assert.Contains(t, out, "Prefix: secret")
	assert.Contains(t, out, "Debounce: 1s")
}

func TestSettingsCmd_Set(t *testing.T) {
	svc := setupTestServices(t)

	out, err := execute(t, nil, "settings", "set", "motion.threshold", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "motion.threshold = 15")

	settings, err := svc.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 15.0, settings.Motion.Threshold)
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, nil, "settings", "set", "directory.permission", "maybe")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = execute(t, nil, "settings", "set", "no.such", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "motion.debounce_ms\n")
	assert.Contains(t, out, "password.prefix\n")
}
