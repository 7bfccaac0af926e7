package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/secretpass-cli/internal/core/domain"
)

func TestFormatSnapshot(t *testing.T) {
	v := domain.ConditionVector{}.With(domain.SlotMotion, true)

	line := formatSnapshot(domain.Snapshot{Seq: 3, Vector: v, Changed: domain.SlotMotion})

	assert.Equal(t,
		"#3 gate=closed orientation=✗ ambient=✗ motion=✓ directory_match=✗ password_match=✗ (motion)",
		line)
}

func TestFormatSnapshot_Initial(t *testing.T) {
	line := formatSnapshot(domain.Snapshot{Changed: domain.NoSlot})

	assert.True(t, strings.HasPrefix(line, "#0 gate=closed"))
	assert.NotContains(t, line, "(")
}

func TestStatusCmd_PrintsUntilDirectorySettles(t *testing.T) {
	setupTestServices(t, "Chiburashka")

	out, err := execute(t, nil, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "#0 gate=closed")
	assert.Contains(t, out, "directory_match=✓ password_match=✗ (directory_match)")
}

func TestStatusCmd_JSON(t *testing.T) {
	svc := setupTestServices(t)

	out, err := execute(t, nil, "status", "--json")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)

	var first statusLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, svc.Session.ID(), first.SessionID)
	assert.Equal(t, uint64(0), first.Seq)
	assert.Empty(t, first.Changed)
	assert.Len(t, first.Conditions, domain.SlotCount)
}

func TestStatusCmd_Watch(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "status", "--watch", "50ms")

	require.NoError(t, err)
	assert.Contains(t, out, "#0 gate=closed")
}

func TestStatusCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, nil, "status", "extra")

	assert.Error(t, err)
}
