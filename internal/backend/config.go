package backend

import (
	"fmt"

	"masareef/internal/config"
)

// Slot names for FromAppConfig.
const (
	PrimarySlot  = "primary"
	FallbackSlot = "fallback"
)

// FromAppConfig maps one backend slot of the application config to a backend
// config.
func FromAppConfig(appConfig *config.Config, slot string) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	var name string
	switch slot {
	case PrimarySlot:
		name = appConfig.PrimaryBackend
	case FallbackSlot:
		name = appConfig.FallbackBackend
	default:
		return Config{}, fmt.Errorf("unknown backend slot: %s", slot)
	}

	t := Type(name)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", name)
	}

	return Config{
		Type:         t,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		FlatFileDir:  appConfig.FlatFileDir,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case FlatFileBackend:
		if c.FlatFileDir == "" {
			return fmt.Errorf("flat-file directory is required for flatfile backend")
		}
	case MemoryBackend:
		// nothing to validate
	}

	return nil
}
