// Package env provides configuration sources that options may fall back to when they aren't given on the command line.
package env

import (
	"os"
	"strings"
)

// Source looks up configuration values by key.
// An empty or whitespace-only value is reported as not found.
type Source interface {
	Lookup(key string) (string, bool)
}

// SourceFunc adapts a function to a [Source].
type SourceFunc func(key string) (string, bool)

func (f SourceFunc) Lookup(key string) (string, bool) {
	return f(key)
}

type osSource struct{}

// OS returns a [Source] reading the process environment.
// Keys are compared case-insensitive, and values are trimmed.
func OS() Source {
	return osSource{}
}

func (osSource) Lookup(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return trimmed(val)
	}
	key = strings.ToLower(key)
	for _, entry := range os.Environ() {
		k, v, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		if strings.ToLower(k) == key {
			return trimmed(v)
		}
	}
	return "", false
}

func trimmed(val string) (string, bool) {
	val = strings.TrimSpace(val)
	if len(val) == 0 {
		return "", false
	}
	return val, true
}

// Map is a fixed [Source], mostly useful for tests and for layering defaults.
// Keys are compared case-insensitive.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	if val, ok := m[key]; ok {
		return trimmed(val)
	}
	key = strings.ToLower(key)
	for k, v := range m {
		if strings.ToLower(k) == key {
			return trimmed(v)
		}
	}
	return "", false
}

// Layered returns a [Source] that consults each source in order, returning the first value found.
func Layered(sources ...Source) Source {
	return SourceFunc(func(key string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if val, ok := src.Lookup(key); ok {
				return val, true
			}
		}
		return "", false
	})
}

// Val looks up key in src, returning defaultVal if it isn't set.
func Val(src Source, key, defaultVal string) string {
	if src == nil {
		return defaultVal
	}
	if val, ok := src.Lookup(key); ok {
		return val
	}
	return defaultVal
}
