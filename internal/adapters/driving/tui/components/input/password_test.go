package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeRunes(p *PasswordInput, s string) bool {
	changed := false
	for _, r := range s {
		var c bool
		p, _, c = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		changed = changed || c
	}
	return changed
}

func TestPasswordInput_Masks(t *testing.T) {
	p := NewPasswordInput(nil)

	changed := typeRunes(p, "secret42")

	assert.True(t, changed)
	assert.Equal(t, "secret42", p.Value())
	assert.NotContains(t, p.View(), "secret42")
}

func TestPasswordInput_UnchangedOnNavigation(t *testing.T) {
	p := NewPasswordInput(nil)
	p.SetValue("abc")

	_, _, changed := p.Update(tea.KeyMsg{Type: tea.KeyLeft})

	assert.False(t, changed)
	assert.Equal(t, "abc", p.Value())
}

func TestPasswordInput_Backspace(t *testing.T) {
	p := NewPasswordInput(nil)
	p.SetValue("abc")

	_, _, changed := p.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.True(t, changed)
	assert.Equal(t, "ab", p.Value())
}

func TestPasswordInput_FocusAndWidth(t *testing.T) {
	p := NewPasswordInput(nil)
	assert.True(t, p.Focused())

	p.Blur()
	assert.False(t, p.Focused())

	p.SetWidth(10)
	assert.Equal(t, 10, p.Width())
}
