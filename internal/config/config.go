// Package config loads enwiro's single global configuration file: a
// fixed-path TOML document with a small set of recognized keys. Unknown
// keys are ignored; a missing file yields defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kantord/enwiro/internal/enwiroerr"
)

// FileName is the config file's fixed basename.
const FileName = "enwiro.toml"

// defaultRefreshIntervalSeconds and defaultDaemonIdleTimeoutSeconds back
// the two supplemental keys the cache daemon reads.
const (
	defaultRefreshIntervalSeconds   = 300
	defaultDaemonIdleTimeoutSeconds = 3600
)

// Config is enwiro's global options record.
type Config struct {
	// WorkspacesDirectory is where environments live.
	WorkspacesDirectory string `mapstructure:"workspaces_directory"`

	// Adapter is the short name of the adapter plugin used for
	// get-active/activate. Required for activate/wrap auto-lookup.
	Adapter string `mapstructure:"adapter"`

	// RefreshIntervalSeconds controls how often the cache daemon
	// refreshes recipes.cache.
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`

	// DaemonIdleTimeoutSeconds controls how long the cache daemon waits
	// without a heartbeat before shutting down.
	DaemonIdleTimeoutSeconds int `mapstructure:"daemon_idle_timeout_seconds"`
}

// Path returns the fixed config file location:
// $XDG_CONFIG_HOME/enwiro/enwiro.toml, falling back to
// $HOME/.config/enwiro/enwiro.toml.
func Path() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "enwiro", FileName)
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "enwiro", FileName)
}

// Defaults returns a Config populated with the documented defaults.
func Defaults() Config {
	return Config{
		WorkspacesDirectory:      filepath.Join(os.Getenv("HOME"), ".enwiro_envs"),
		RefreshIntervalSeconds:   defaultRefreshIntervalSeconds,
		DaemonIdleTimeoutSeconds: defaultDaemonIdleTimeoutSeconds,
	}
}

// Load reads the config file at Path(). A missing file is not an
// error: Defaults() is returned unchanged. A file that exists but
// cannot be parsed is surfaced as a *enwiroerr.ConfigReadError; callers
// are expected to fall back to defaults and log it rather than abort.
func Load() (Config, error) {
	cfg := Defaults()
	path := Path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return cfg, enwiroerr.NewConfigReadError(path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, enwiroerr.NewConfigReadError(path, err)
	}

	if cfg.WorkspacesDirectory == "" {
		cfg.WorkspacesDirectory = Defaults().WorkspacesDirectory
	}
	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = defaultRefreshIntervalSeconds
	}
	if cfg.DaemonIdleTimeoutSeconds <= 0 {
		cfg.DaemonIdleTimeoutSeconds = defaultDaemonIdleTimeoutSeconds
	}

	return cfg, nil
}
