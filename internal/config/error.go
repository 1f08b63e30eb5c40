package config

import (
	"strings"
)

// ConfigError collects everything wrong with a config file so it can be
// reported in one go.
type ConfigError struct {
	Path    string
	Missing []string // unresolved ${VAR} references, with their :? message
	Errors  []string // "field: problem" validation messages
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	line := func(s string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s)
	}

	if e.Path != "" {
		line(e.Path + ":")
	}
	if len(e.Missing) > 0 {
		line("missing environment variables: " + strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		line("validation failed:")
		for _, msg := range e.Errors {
			line("  - " + msg)
		}
	}
	return b.String()
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
