package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings carries display defaults. Command-line flags override the
// file; the file overrides the built-in defaults.
type Settings struct {
	Top            int     `yaml:"top"`
	MaxDepth       int     `yaml:"max_depth"`
	MinPercent     float64 `yaml:"min_percent"`
	SkipFirstLevel bool    `yaml:"skip_first_level"`
	Prettify       *bool   `yaml:"prettify"`
}

func defaultSettings() Settings {
	return Settings{
		Top:        10,
		MaxDepth:   0, // unlimited
		MinPercent: 0.5,
	}
}

func loadSettings() (Settings, error) {
	settings := defaultSettings()
	if configPath == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return settings, fmt.Errorf("can't read settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("can't parse settings %s: %w", configPath, err)
	}

	if settings.Prettify != nil && !*settings.Prettify {
		noPrettify = true
	}
	return settings, nil
}
