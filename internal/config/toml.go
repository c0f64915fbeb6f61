// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Cost   CostConfig   `toml:"cost"`
	Sweep  SweepConfig  `toml:"sweep"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// CostConfig maps cost model constants.
type CostConfig struct {
	PlatformFee   *float64 `toml:"platform-fee"`
	AirtimeRate   *float64 `toml:"airtime-rate"`
	AdminOverhead *float64 `toml:"admin-overhead"`
}

// SweepConfig maps reduction sweep settings.
type SweepConfig struct {
	Reductions []float64 `toml:"reductions"`
	Focus      *float64  `toml:"focus"`
}

// OutputConfig maps report artifact settings.
type OutputConfig struct {
	Dir      *string `toml:"dir"`
	Charts   *bool   `toml:"charts"`
	Workbook *bool   `toml:"workbook"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
