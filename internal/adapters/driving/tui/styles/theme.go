// Package styles provides the colour theme and lipgloss styles for the login screen.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F5A97F"), // Peach
		Secondary:  lipgloss.Color("#8AADF4"), // Blue
		Background: lipgloss.Color("#24273A"), // Base
		Foreground: lipgloss.Color("#CAD3F5"), // Text
		Muted:      lipgloss.Color("#6E738D"), // Overlay
		Success:    lipgloss.Color("#A6DA95"), // Green
		Warning:    lipgloss.Color("#EED49F"), // Yellow
		Error:      lipgloss.Color("#ED8796"), // Red
		Border:     lipgloss.Color("#494D64"), // Surface
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// ConditionMet marks a satisfied condition.
	ConditionMet lipgloss.Style

	// ConditionUnmet marks an unsatisfied condition.
	ConditionUnmet lipgloss.Style

	// ButtonEnabled is the login button when the gate is open.
	ButtonEnabled lipgloss.Style

	// ButtonDisabled is the login button when the gate is closed.
	ButtonDisabled lipgloss.Style

	// Dialog frames the permission prompt.
	Dialog lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#1E2030")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		ConditionMet: lipgloss.NewStyle().
			Foreground(theme.Success),

		ConditionUnmet: lipgloss.NewStyle().
			Foreground(theme.Muted),

		ButtonEnabled: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Success).
			Padding(0, 2),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Border).
			Padding(0, 2),

		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Warning).
			Padding(1, 3),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
