package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "punish2048"

// Environment variables that override file settings.
const (
	EnvIdle     = "PUNISH2048_IDLE"
	EnvIdleMS   = "PUNISH2048_IDLE_MS"
	EnvPollMS   = "PUNISH2048_POLL_MS"
	EnvStrategy = "PUNISH2048_STRATEGY"
	EnvDB       = "PUNISH2048_DB"
)

// Load loads the configuration, applies environment overrides and validates it.
// Search order: customPath -> $XDG_CONFIG_HOME/punish2048/config.yaml ->
// ./configs/punish2048.yaml -> embedded default.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		cfg = Default() // Fallback to hardcoded if embed fails
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
	} else if data, ok := readFirst(userConfigPath(), filepath.Join("configs", appName+".yaml")); ok {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse user config: %w", err)
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvIdle); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvIdle, err)
		}
		cfg.Idle.Enabled = on
	}
	if v := getenv(EnvIdleMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvIdleMS, err)
		}
		cfg.Idle.AfterMS = ms
	}
	if v := getenv(EnvPollMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPollMS, err)
		}
		cfg.Idle.PollMS = ms
	}
	if v := getenv(EnvStrategy); v != "" {
		cfg.Idle.Strategy = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvDB); v != "" {
		cfg.Storage.DBPath = v
	}
	return nil
}

// DefaultDBPath returns the scores database location under the XDG data
// directory, falling back to ~/.punish2048/scores.db.
func DefaultDBPath() string {
	if p, err := xdg.DataFile(filepath.Join(appName, "scores.db")); err == nil {
		return p
	}
	return filepath.Join("~", "."+appName, "scores.db")
}

// DefaultHostKeyPath returns the SSH host key location under the XDG data directory.
func DefaultHostKeyPath() string {
	if p, err := xdg.DataFile(filepath.Join(appName, "host_key")); err == nil {
		return p
	}
	return filepath.Join("~", "."+appName, "host_key")
}

// userConfigPath returns the XDG config file if it exists, or empty.
func userConfigPath() string {
	p, err := xdg.SearchConfigFile(filepath.Join(appName, "config.yaml"))
	if err != nil {
		return ""
	}
	return p
}

func readFirst(paths ...string) ([]byte, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			return data, true
		}
	}
	return nil, false
}
