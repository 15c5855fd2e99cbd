package settings

import "context"

// SettingsService defines business logic for the singleton settings
type SettingsService interface {
	// GetSettings returns the current settings
	GetSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings validates and stores new settings (admin)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
