package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds declgen settings loadable from a YAML file. Command-line
// flags override anything set here.
type Config struct {
	Path              string `yaml:"path"`
	Filter            string `yaml:"filter"`
	IncludeUnexported bool   `yaml:"include_unexported"`
	Output            string `yaml:"output"`
	Package           string `yaml:"package"`
	LogFile           string `yaml:"log_file"`
	LogLevel          string `yaml:"log_level"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
