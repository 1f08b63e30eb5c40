// Package mediaurl classifies pasted catalog URLs.
package mediaurl

import (
	"regexp"
	"strings"
)

// Kind is the catalog page type a URL points at.
type Kind int

const (
	Other Kind = iota
	Album
	Artist
)

func (k Kind) String() string {
	switch k {
	case Album:
		return "album"
	case Artist:
		return "artist"
	default:
		return "other"
	}
}

// Classify reports whether raw is an album or artist page URL.
// Patterns are checked in order, so a URL carrying both segments is an album.
func Classify(raw string) Kind {
	switch {
	case strings.Contains(raw, "/album/"):
		return Album
	case strings.Contains(raw, "/artist/"):
		return Artist
	default:
		return Other
	}
}

var separatorRegex = regexp.MustCompile(`[,\s]+`)

// Split breaks pasted text into individual URLs.
// Commas, newlines and other whitespace all separate entries; empty entries are dropped.
func Split(raw string) []string {
	parts := separatorRegex.Split(strings.TrimSpace(raw), -1)
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}
