package driving

import "github.com/custodia-labs/propdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key, e.g. "import.chunk_size".
	Set(key, value string) error

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
