// Package config loads wsrun settings. Values are layered with viper:
// built-in defaults, then an optional .wsrun.yaml in the workspace root,
// then WSRUN_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/wsrun/internal/graph"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the workspace root.
const FileName = ".wsrun.yaml"

// Config is the complete wsrun configuration.
type Config struct {
	// Parallel runs independent projects concurrently.
	Parallel bool `mapstructure:"parallel"`
	// Jobs caps concurrent projects per batch (0 = unlimited).
	Jobs int `mapstructure:"jobs"`
	// Order runs projects in dependency order across all dependency kinds.
	Order bool `mapstructure:"order"`
	// OrderKinds restricts dependency ordering to these kinds. When set it
	// takes precedence over Order.
	OrderKinds []string `mapstructure:"order_kinds"`
	// Prefix tags command output lines with the project name.
	Prefix bool      `mapstructure:"prefix"`
	Log    LogConfig `mapstructure:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Parallel: true,
		Jobs:     0,
		Order:    false,
		Prefix:   true,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("order", d.Order)
	v.SetDefault("order_kinds", d.OrderKinds)
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// flagKeys maps config keys to the flag names bound to them.
var flagKeys = map[string]string{
	"parallel":    "parallel",
	"jobs":        "jobs",
	"order":       "order",
	"order_kinds": "order-kinds",
	"log.level":   "log-level",
	"log.format":  "log-format",
}

// Load builds the configuration for the workspace at root. configFile, when
// non-empty, replaces the workspace config file and must exist. Flags that
// were set explicitly override every other source.
func Load(root, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("WSRUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		path := filepath.Join(root, FileName)
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
		// --no-prefix is the inverse of the prefix key.
		if f := flags.Lookup("no-prefix"); f != nil && f.Changed {
			v.Set("prefix", f.Value.String() != "true")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Include returns the dependency kinds to order by, or nil when dependency
// ordering is disabled.
func (c *Config) Include() (*graph.Include, error) {
	if len(c.OrderKinds) > 0 {
		inc, err := graph.ParseKinds(c.OrderKinds)
		if err != nil {
			return nil, err
		}
		return &inc, nil
	}
	if c.Order {
		inc := graph.All()
		return &inc, nil
	}
	return nil, nil
}
