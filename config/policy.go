package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// PolicyConfig is the file form of the access policy table.
type PolicyConfig struct {
	Capabilities []CapabilityRuleConfig `mapstructure:"capabilities"`
	Routes       []RouteConfig          `mapstructure:"routes"`
	Menu         []MenuEntryConfig      `mapstructure:"menu"`
	Targets      map[string]string      `mapstructure:"targets"`
}

type CapabilityRuleConfig struct {
	Name  string   `mapstructure:"name"`
	Roles []string `mapstructure:"roles"`
}

type RouteConfig struct {
	Name       string   `mapstructure:"name"`
	Path       string   `mapstructure:"path"`
	Capability string   `mapstructure:"capability"`
	Roles      []string `mapstructure:"roles"`
}

type MenuEntryConfig struct {
	Label      string `mapstructure:"label"`
	Route      string `mapstructure:"route"`
	Capability string `mapstructure:"capability"`
}

// LoadPolicy reads a policy file (YAML, JSON or TOML, by extension).
func LoadPolicy(path string) (*PolicyConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var policy PolicyConfig
	if err := v.Unmarshal(&policy); err != nil {
		return nil, fmt.Errorf("failed to decode policy file: %w", err)
	}

	return &policy, nil
}
