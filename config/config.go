// Package config loads tool settings from an optional javamap.yaml file.
// A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings an extraction run honors. Command-line flags
// override whatever the file provides.
type Config struct {
	// Output is the path the JSON array is written to; "-" means stdout.
	Output string `mapstructure:"output"`
	// Workers bounds parallel file processing.
	Workers int `mapstructure:"workers"`
	// Pretty switches on indented JSON output.
	Pretty bool `mapstructure:"pretty"`
	// Exclude lists directory names skipped during the walk.
	Exclude []string `mapstructure:"exclude"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output:  "-",
		Workers: 4,
		Exclude: []string{"target", "build", "node_modules"},
	}
}

// Load reads javamap.yaml from dir. If path is non-empty it names the
// config file directly and must exist.
func Load(dir, path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("javamap")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	cfg := Default()
	v.SetDefault("output", cfg.Output)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("pretty", cfg.Pretty)
	v.SetDefault("exclude", cfg.Exclude)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = Default().Workers
	}
	return cfg, nil
}
