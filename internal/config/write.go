package config

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

// DefaultTOML returns the commented default config written by `config init`.
func DefaultTOML() string {
	return defaultConfig
}

// WriteDefault writes the commented default config to path, creating parent
// directories.
func WriteDefault(path string) error {
	return writeFile(path, []byte(defaultConfig))
}

// Write encodes c as TOML to path. Comments and ${VAR} references from the
// original file are not preserved.
func (c *Config) Write(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// writeFile replaces path through a temp file in the same directory so a
// failed write never leaves a truncated config behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
