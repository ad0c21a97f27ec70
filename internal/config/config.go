// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig holds the default dimensions of a new model and the mesh
// shading options applied when building geometry.
type ModelConfig struct {
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	Depth            int  `yaml:"depth"`
	AmbientOcclusion bool `yaml:"ambient_occlusion"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Width:            32,
			Height:           32,
			Depth:            32,
			AmbientOcclusion: true,
		},
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
