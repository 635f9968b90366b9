// Package config resolves reposearch settings from the config file,
// REPOSEARCH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration
type Config struct {
	APIURL               string        `mapstructure:"api_url"`
	Token                string        `mapstructure:"token"`
	DefaultQuery         string        `mapstructure:"default_query"`
	Debounce             time.Duration `mapstructure:"debounce"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	PresentDetailModally bool          `mapstructure:"present_detail_modally"`
	LogFile              string        `mapstructure:"log_file"`
}

// fileConfig is the on-disk TOML shape. Durations are kept as strings.
type fileConfig struct {
	APIURL               string `toml:"api_url"`
	Token                string `toml:"token,omitempty"`
	DefaultQuery         string `toml:"default_query"`
	Debounce             string `toml:"debounce"`
	RequestTimeout       string `toml:"request_timeout"`
	PresentDetailModally bool   `toml:"present_detail_modally"`
	LogFile              string `toml:"log_file,omitempty"`
}

const (
	envPrefix       = "REPOSEARCH"
	configName      = "config"
	configType      = "toml"
	appDirName      = "reposearch"
	defaultAPIURL   = "https://api.github.com"
	defaultQuery    = "composable"
	defaultDebounce = 300 * time.Millisecond
	defaultTimeout  = 10 * time.Second
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		DefaultQuery:   defaultQuery,
		Debounce:       defaultDebounce,
		RequestTimeout: defaultTimeout,
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDirName, configName+"."+configType)
}

// Setup prepares v to read path (or the default location when empty),
// REPOSEARCH_* variables and GITHUB_TOKEN. It does not read anything yet.
func Setup(v *viper.Viper, path string) {
	d := Default()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("token", "")
	v.SetDefault("default_query", d.DefaultQuery)
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("present_detail_modally", d.PresentDetailModally)
	v.SetDefault("log_file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Dir(DefaultPath()))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("token", envPrefix+"_TOKEN", "GITHUB_TOKEN")
}

// BindFlags maps command-line flags onto config keys. Flags missing from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and returns the merged configuration
// along with the file that was used ("" when none was found).
func Load(v *viper.Viper) (Config, string, error) {
	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, "", fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.DefaultQuery = strings.TrimSpace(cfg.DefaultQuery)

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	var problems []string
	if c.APIURL == "" {
		problems = append(problems, "api_url must not be empty")
	}
	if c.DefaultQuery == "" {
		problems = append(problems, "default_query must not be empty")
	}
	if c.Debounce < 0 {
		problems = append(problems, "debounce must not be negative")
	}
	if c.RequestTimeout < 0 {
		problems = append(problems, "request_timeout must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Save writes cfg to path as TOML, creating directories as needed
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	// the file may hold a token
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders cfg in the config file format
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(fileConfig{
		APIURL:               cfg.APIURL,
		Token:                cfg.Token,
		DefaultQuery:         cfg.DefaultQuery,
		Debounce:             cfg.Debounce.String(),
		RequestTimeout:       cfg.RequestTimeout.String(),
		PresentDetailModally: cfg.PresentDetailModally,
		LogFile:              cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Redacted returns a copy of c that is safe to print
func (c Config) Redacted() Config {
	if c.Token != "" {
		c.Token = "<redacted>"
	}
	return c
}
