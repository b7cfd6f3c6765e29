package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings realmboard reads at startup.
type Config struct {
	APIURL      string
	PollSeconds int
	SessionDB   string
	Log         LogConfig
}

// LogConfig selects where and how verbosely realmboard logs.
type LogConfig struct {
	File   string
	Level  string
	Format string
}

const (
	defaultConfigPath  = "~/.config/realmboard/config.toml"
	defaultAPIURL      = "https://api.sotah.info"
	defaultPollSeconds = 60
	defaultSessionDB   = "~/.local/share/realmboard/session.db"
	defaultLogFile     = "~/.local/share/realmboard/realmboard.log"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:      defaultAPIURL,
		PollSeconds: defaultPollSeconds,
		SessionDB:   mustExpand(defaultSessionDB),
		Log: LogConfig{
			File:   mustExpand(defaultLogFile),
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		PollSeconds int    `toml:"poll_seconds"`
		SessionDB   string `toml:"session_db"`
		Log         struct {
			File   string `toml:"file"`
			Level  string `toml:"level"`
			Format string `toml:"format"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if v := strings.TrimSpace(raw.SessionDB); v != "" {
		cfg.SessionDB = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.Log.File = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Level)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Format)); v != "" {
		cfg.Log.Format = v
	}

	return cfg, nil
}

// PollInterval returns the realm refresh cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
