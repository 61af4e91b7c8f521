package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/goscrape/internal/aggregate"
)

// loadSources reads the default smart-search source configuration from a
// YAML file. A command-supplied config always wins over these defaults.
// An empty path yields the zero config without error.
func loadSources(path string) (aggregate.Config, error) {
	if path == "" {
		return aggregate.Config{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return aggregate.Config{}, fmt.Errorf("read sources file: %w", err)
	}
	var cfg aggregate.Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return aggregate.Config{}, fmt.Errorf("parse sources file: %w", err)
	}
	return cfg, nil
}
