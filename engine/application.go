package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima-gl/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`
	VSync    bool          `toml:"vsync"`
	// Directory watched for assets, relative to the working directory.
	AssetsDir string `toml:"assets_dir"`
	// Background color as RGBA in [0, 1].
	ClearColor [4]float32 `toml:"clear_color"`
	// Number of job workers, used for asset decoding.
	Workers int `toml:"workers"`
	// Address serving prometheus metrics, empty disables it.
	MetricsAddr string `toml:"metrics_addr"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Anima",
		LogLevel:    core.InfoLevel,
		VSync:       true,
		AssetsDir:   "assets",
		ClearColor:  [4]float32{0.1, 0.1, 0.12, 1},
		Workers:     2,
	}
}

// LoadApplicationConfig reads a TOML file on top of the defaults. A missing
// file yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("configuration %s not found, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be nonzero, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color values must be between 0.0 and 1.0")
		}
	}
	return nil
}
