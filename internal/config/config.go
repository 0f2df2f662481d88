// Package config loads the program settings from defaults, an optional
// config.yaml, GITK_REFS_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	AppName   = "gitk-refs"
	EnvPrefix = "GITK_REFS"

	KeyMode          = "mode"
	KeyAutoReload    = "auto_reload"
	KeyCommitLimit   = "commit_limit"
	KeyConfirmDelete = "confirm_delete"
	KeyVerbose       = "verbose"
)

var validModes = []string{"auto", "light", "dark"}

type Config struct {
	Mode          string `mapstructure:"mode" yaml:"mode"`
	AutoReload    bool   `mapstructure:"auto_reload" yaml:"auto_reload"`
	CommitLimit   int    `mapstructure:"commit_limit" yaml:"commit_limit"`
	ConfirmDelete bool   `mapstructure:"confirm_delete" yaml:"confirm_delete"`
	Verbose       bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Dir returns the directory searched for config.yaml.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// New returns a viper instance with defaults and environment lookup set up.
// Flags may be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMode, "auto")
	v.SetDefault(KeyAutoReload, true)
	v.SetDefault(KeyCommitLimit, 200)
	v.SetDefault(KeyConfirmDelete, true)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. An explicit
// file must exist; the default location is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	mode := strings.ToLower(strings.TrimSpace(c.Mode))
	valid := false
	for _, m := range validModes {
		if m == mode {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("invalid mode %q: want one of %s", c.Mode, strings.Join(validModes, ", ")))
	}
	if c.CommitLimit <= 0 {
		errs = append(errs, fmt.Errorf("invalid commit_limit %d: must be positive", c.CommitLimit))
	}
	return errors.Join(errs...)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
