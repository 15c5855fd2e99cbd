package settings

import "context"

// SettingsRepository reads and writes the singleton settings row.
type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the row has not been created yet
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) (Settings, error)
}
