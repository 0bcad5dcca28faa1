package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anima.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadApplicationConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), config)
}

func TestLoadApplicationConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
name = "demo"
start_width = 800
start_height = 600
log_level = "debug"
vsync = false
clear_color = [0.0, 0.5, 1.0, 1.0]
`)
	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", config.Name)
	assert.Equal(t, uint32(800), config.StartWidth)
	assert.Equal(t, uint32(600), config.StartHeight)
	assert.Equal(t, core.DebugLevel, config.LogLevel)
	assert.False(t, config.VSync)
	assert.Equal(t, [4]float32{0, 0.5, 1, 1}, config.ClearColor)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(100), config.StartPosX)
	assert.Equal(t, "assets", config.AssetsDir)
	assert.Equal(t, 2, config.Workers)
}

func TestLoadApplicationConfigRejectsInvalidValues(t *testing.T) {
	for name, contents := range map[string]string{
		"syntax":      "name = ",
		"zero width":  "start_width = 0",
		"workers":     "workers = 0",
		"clear color": "clear_color = [2.0, 0.0, 0.0, 1.0]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, contents))
			assert.Error(t, err)
		})
	}
}
