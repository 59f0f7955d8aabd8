package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/waznabudget/masarifbot/core/config"
	coredatabase "github.com/waznabudget/masarifbot/core/database"
)

// BotConfig extends the core configuration with the database settings the
// bot needs for the member store.
type BotConfig struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *BotConfig) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads the YAML file, applies environment overrides, and
// validates the result.
func LoadConfig(path string) (*BotConfig, error) {
	var cfg BotConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	return &cfg, nil
}
