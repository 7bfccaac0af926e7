package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingSessionService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSessionService.Error(), "session service")
}
