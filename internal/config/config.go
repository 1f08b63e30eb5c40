// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Tasks  TasksConfig  `toml:"tasks"`
	Poll   PollConfig   `toml:"poll"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
	Web    WebConfig    `toml:"web"`
}

// ServerConfig locates the download backend.
type ServerConfig struct {
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

// TasksConfig holds the defaults sent with every task request.
type TasksConfig struct {
	Quality    string `toml:"quality"`
	SongOnly   bool   `toml:"song_only"`
	MaxRetries int    `toml:"max_retries"`
}

type PollConfig struct {
	Interval     time.Duration `toml:"interval"`
	OverlapGuard bool          `toml:"overlap_guard"`
}

// CacheConfig configures the local SQLite store.
// A zero MetadataTTL disables metadata caching.
type CacheConfig struct {
	Path        string        `toml:"path"`
	MetadataTTL time.Duration `toml:"metadata_ttl"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type WebConfig struct {
	Listen string `toml:"listen"`
}

// Default returns the built-in configuration used when no file is found.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://127.0.0.1:8080",
			Timeout: 30 * time.Second,
		},
		Tasks: TasksConfig{
			Quality: "alac",
		},
		Poll: PollConfig{
			Interval: 2 * time.Second,
		},
		Cache: CacheConfig{
			Path:        DefaultDataPath(),
			MetadataTTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Web: WebConfig{
			Listen: "127.0.0.1:8090",
		},
	}
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without validating it.
// Keys absent from the file keep their default values.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Cache.Path = expandHome(cfg.Cache.Path)
	cfg.Log.File = expandHome(cfg.Log.File)
	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")

	return cfg, nil
}

// Resolve loads the config at path. An empty path runs Discover and falls back
// to Default when no file exists. The returned path is empty for defaults.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		if errors.Is(err, ErrNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
