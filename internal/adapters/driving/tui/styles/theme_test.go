package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range accents {
		require.NotEmpty(t, string(c))
		assert.False(t, seen[string(c)], "duplicate accent: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_ConditionMarkersRender(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.ConditionMet.Render("ok"), "ok")
	assert.Contains(t, s.ConditionUnmet.Render("no"), "no")
	assert.Contains(t, s.ButtonEnabled.Render("Log in"), "Log in")
	assert.Contains(t, s.ButtonDisabled.Render("Log in"), "Log in")
}
