package menu

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the process level switches of the engine.
type Settings struct {
	// EnableFastEvent delivers load events straight to the engine listeners
	// instead of going through the broadcaster.
	EnableFastEvent bool `env:"MENU_ENABLE_FAST_EVENT" envDefault:"false"`
	// LegacyMaterials selects SKULL_ITEM:3 for player heads.
	LegacyMaterials bool `env:"MENU_LEGACY_MATERIALS" envDefault:"false"`
	InventorySize   int  `env:"MENU_INVENTORY_SIZE" envDefault:"54"`
}

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() Settings {
	return Settings{InventorySize: DefaultInventorySize}
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{})
}

// LoadSettingsFrom reads Settings from the supplied variables only.
func LoadSettingsFrom(environment map[string]string) (Settings, error) {
	if environment == nil {
		environment = map[string]string{}
	}
	return parseSettings(env.Options{Environment: environment})
}

func parseSettings(opts env.Options) (Settings, error) {
	var settings Settings
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return Settings{}, fmt.Errorf("menu: parse settings: %w", err)
	}
	if settings.InventorySize <= 0 {
		return Settings{}, fmt.Errorf("menu: inventory size must be positive, got %d", settings.InventorySize)
	}
	return settings, nil
}
