package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvOutputDir = "IVRSTATS_OUTPUT_DIR"
	EnvLogLevel  = "IVRSTATS_LOG_LEVEL"
)

// LoadDotEnv loads variables from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with any non-empty IVRSTATS_* variables.
func ApplyEnv(cfg *FileConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Output.Dir = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = &v
	}
}
