// Package config loads dashboard settings from flags, VMTOP_* environment
// variables and an optional YAML file, in that precedence order.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultURI      = "qemu:///system"
	DefaultInterval = time.Second
)

type Config struct {
	// URI is the libvirt connection URI.
	URI string `mapstructure:"uri"`
	// Interval is the polling tick period.
	Interval time.Duration `mapstructure:"interval"`
	// LogFile receives structured logs; empty disables logging.
	LogFile string `mapstructure:"log_file"`
}

// Load builds the effective config. path points at an optional config file;
// flags, when non-nil, take precedence over everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("uri", DefaultURI)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("VMTOP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		bindings := map[string]string{
			"uri":      "uri",
			"interval": "interval",
			"log_file": "log-file",
		}
		for key, name := range bindings {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri must not be empty")
	}
	return &cfg, nil
}
