package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordCmd_Match(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, strings.NewReader("secret42\n"), "password")

	require.NoError(t, err)
	assert.Contains(t, out, "Password matches.")
}

func TestPasswordCmd_Mismatch(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, strings.NewReader("secret41\n"), "password")

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestPasswordCmd_NoTrailingNewline(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, strings.NewReader("secret42"), "password")

	assert.NoError(t, err)
}

func TestPasswordCmd_EmptyInput(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, strings.NewReader(""), "password")

	assert.Error(t, err)
}

func TestPasswordCmd_Hint(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "password", "--hint")

	require.NoError(t, err)
	assert.Equal(t, "secret42\n", out)
}
