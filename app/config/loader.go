package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the industry configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the YAML configuration file, applies defaults and validates it
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func (l *Loader) setDefaults(config *Config) {
	if config.Industry == "" {
		config.Industry = "industry"
	}
	if config.TopN == 0 {
		config.TopN = 5
	}
}

// validate validates the configuration. An empty source list is a
// configuration error: the run would do nothing, so it aborts up front.
func (l *Loader) validate(config *Config) error {
	if len(config.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	for i, src := range config.Sources {
		if src.Name == "" {
			return fmt.Errorf("source at index %d has no name", i)
		}
		if src.RSS == "" {
			return fmt.Errorf("source %q has no rss url", src.Name)
		}
	}
	for i, cat := range config.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category at index %d has no name", i)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", cat.Name)
		}
	}
	if config.TopN < 0 {
		return fmt.Errorf("top_n must be non-negative")
	}
	return nil
}
