package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true,
}

// ValidQualities are the quality values the backend accepts.
var ValidQualities = []string{"alac", "aac", "atmos"}

// MinPollInterval is the shortest accepted poll interval.
const MinPollInterval = 100 * time.Millisecond

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("server.url: must be an absolute http(s) URL, got %q", c.Server.URL))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("server.timeout: must be positive, got %s", c.Server.Timeout))
	}

	if !IsValidQuality(c.Tasks.Quality) {
		errs = append(errs, fmt.Sprintf("tasks.quality: must be one of alac, aac, atmos; got %q", c.Tasks.Quality))
	}
	if c.Tasks.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("tasks.max_retries: must not be negative, got %d", c.Tasks.MaxRetries))
	}

	if c.Poll.Interval < MinPollInterval {
		errs = append(errs, fmt.Sprintf("poll.interval: must be at least %s, got %s", MinPollInterval, c.Poll.Interval))
	}

	if c.Cache.MetadataTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.metadata_ttl: must not be negative, got %s", c.Cache.MetadataTTL))
	}
	if c.Cache.MetadataTTL > 0 && c.Cache.Path == "" {
		errs = append(errs, "cache.path: required when metadata_ttl is set")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of text, json; got %q", c.Log.Format))
	}

	if c.Web.Listen == "" {
		errs = append(errs, "web.listen: required")
	}

	return errs
}

// IsValidQuality reports whether q is a quality the backend accepts.
func IsValidQuality(q string) bool {
	for _, v := range ValidQualities {
		if q == v {
			return true
		}
	}
	return false
}
