package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath is where `config init` writes: $XDG_CONFIG_HOME/ampanel/config.toml.
func DefaultPath() string {
	return xdgPath("XDG_CONFIG_HOME", ".config", "config.toml")
}

// DefaultDataPath holds the metadata cache and submission history.
func DefaultDataPath() string {
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "ampanel.db")
}

// xdgPath resolves name under the ampanel directory of an XDG base dir,
// falling back to ~/homeRel, then to the working directory.
func xdgPath(env, homeRel, name string) string {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./ampanel" + filepath.Ext(name)
		}
		base = filepath.Join(home, homeRel)
	}
	return filepath.Join(base, "ampanel", name)
}

// candidatePaths lists where a config file may live, most specific first.
func candidatePaths() []string {
	return []string{
		"ampanel.toml",
		DefaultPath(),
		filepath.Join("/etc", "ampanel", "config.toml"),
	}
}

// Discover returns the config file to load. AMPANEL_CONFIG wins and must
// exist; otherwise the first existing file of ./ampanel.toml, DefaultPath
// and /etc/ampanel/config.toml is used. ErrNotFound lists what was tried.
func Discover() (string, error) {
	if p := os.Getenv("AMPANEL_CONFIG"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("AMPANEL_CONFIG=%s: %w", p, err)
		}
		return p, nil
	}

	tried := candidatePaths()
	for _, p := range tried {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(tried, ", "))
}
