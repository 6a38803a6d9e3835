package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig holds the tunables for the explorer application.
// All fields have sensible defaults; a TOML file can override them.
type AppConfig struct {
	Window WindowConfig `toml:"window"`

	Terrain struct {
		Size     float32 `toml:"size"`     // world edge length
		Segments int     `toml:"segments"` // grid cells per axis
		Seed     int64   `toml:"seed"`
	} `toml:"terrain"`

	Navigation struct {
		BaseSpeed     float32 `toml:"base_speed"`
		RunMultiplier float32 `toml:"run_multiplier"`
		Sensitivity   float32 `toml:"sensitivity"`
	} `toml:"navigation"`

	Telemetry struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"telemetry"`
}

func DefaultAppConfig() AppConfig {
	var cfg AppConfig
	cfg.Window = DefaultWindowConfig()
	cfg.Terrain.Size = 400
	cfg.Terrain.Segments = 128
	cfg.Terrain.Seed = 1
	cfg.Navigation.BaseSpeed = 10
	cfg.Navigation.RunMultiplier = 2
	cfg.Navigation.Sensitivity = 0.002
	cfg.Telemetry.Enabled = false
	cfg.Telemetry.Addr = "localhost:8777"
	return cfg
}

// LoadAppConfig reads a TOML config file over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}
