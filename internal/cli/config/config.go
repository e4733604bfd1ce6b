// Package config loads otelderive tool configuration: an optional
// otelderive.yaml in the working directory, overridable through
// OTELDERIVE_* environment variables. Flags take precedence over both.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the otelderive tool configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	NoColor  bool           `mapstructure:"no_color"`
}

// GenerateConfig configures the generate command
type GenerateConfig struct {
	Output       string `mapstructure:"output"`        // generated file name per package
	MethodPrefix string `mapstructure:"method_prefix"` // prefix of generated methods
}

// Load loads the configuration from otelderive.yml or otelderive.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("generate.output", "zz_generated_otel.go")
	v.SetDefault("generate.method_prefix", "OTel")
	v.SetDefault("no_color", false)

	v.SetConfigName("otelderive")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("OTELDERIVE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Generate.Output == "" {
		return fmt.Errorf("generate.output cannot be empty")
	}
	if len(cfg.Generate.Output) < 4 || cfg.Generate.Output[len(cfg.Generate.Output)-3:] != ".go" {
		return fmt.Errorf("generate.output must name a .go file, got %q", cfg.Generate.Output)
	}
	return nil
}
