package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagModelSize  = flag.Int("model-size", 0, "Edge length of a new model")
	flagNoAO       = flag.Bool("no-ao", false, "Disable ambient occlusion shading")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Display.Fullscreen = true
	}
	if *flagModelSize > 0 {
		cfg.Model.Width = *flagModelSize
		cfg.Model.Height = *flagModelSize
		cfg.Model.Depth = *flagModelSize
	}
	if *flagNoAO {
		cfg.Model.AmbientOcclusion = false
	}
}
