package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Cost.PlatformFee)
	assert.Nil(t, cfg.Sweep.Reductions)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[cost]
platform-fee = 5000
airtime-rate = 0.05

[sweep]
reductions = [0, 25, 50]
focus = 25

[output]
dir = "reports"
charts = false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Cost.PlatformFee)
	assert.Equal(t, 5000.0, *cfg.Cost.PlatformFee)
	assert.Equal(t, 0.05, *cfg.Cost.AirtimeRate)
	assert.Nil(t, cfg.Cost.AdminOverhead)
	assert.Equal(t, []float64{0, 25, 50}, cfg.Sweep.Reductions)
	assert.Equal(t, 25.0, *cfg.Sweep.Focus)
	assert.Equal(t, "reports", *cfg.Output.Dir)
	assert.False(t, *cfg.Output.Charts)
	assert.Nil(t, cfg.Output.Workbook)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cost\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDotEnvAndApplyEnv(t *testing.T) {
	t.Setenv(EnvOutputDir, "")
	t.Setenv(EnvLogLevel, "warn")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("IVRSTATS_OUTPUT_DIR=from-env\nIVRSTATS_LOG_LEVEL=debug\n"), 0o644))
	require.NoError(t, os.Unsetenv(EnvOutputDir))
	require.NoError(t, LoadDotEnv(path))

	var cfg FileConfig
	ApplyEnv(&cfg)
	require.NotNil(t, cfg.Output.Dir)
	assert.Equal(t, "from-env", *cfg.Output.Dir)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "warn", *cfg.Log.Level)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
