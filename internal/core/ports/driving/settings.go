package driving

import "github.com/custodia-labs/secretpass-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key, e.g. "motion.threshold".
	Set(key, value string) error

	// Keys returns every recognised config key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
