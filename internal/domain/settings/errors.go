package settings

import "errors"

var (
	// ErrConfigIncomplete is non-fatal: callers degrade and surface it
	ErrConfigIncomplete = errors.New("settings are incomplete")
	ErrSettingsNotFound = errors.New("settings not found")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)
