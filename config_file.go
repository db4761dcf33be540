package campusfound

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFromFile reads a YAML config file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func ConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
