// ABOUTME: Trainer configuration document with recognized keys and defaults.
// ABOUTME: Unknown keys are carried through load, merge, and save untouched.

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Recognized configuration keys.
const (
	KeyTheme         = "theme"
	KeyMetricsPort   = "metrics_port"
	KeyNotifications = "notifications"
	KeySentryDSN     = "sentry_dsn"
)

// Defaults for the recognized keys. sentry_dsn has no default.
const (
	DefaultTheme         = "superhero"
	DefaultMetricsPort   = 8000
	DefaultNotifications = true
)

// Document is the flat key/value configuration.
type Document map[string]any

// Defaults returns a fresh document holding the recognized defaults.
func Defaults() Document {
	return Document{
		KeyTheme:         DefaultTheme,
		KeyMetricsPort:   DefaultMetricsPort,
		KeyNotifications: DefaultNotifications,
	}
}

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge overwrites keys of d with those in partial and returns d.
func (d Document) Merge(partial Document) Document {
	for k, v := range partial {
		d[k] = v
	}
	return d
}

// withDefaults fills recognized keys missing from d.
func (d Document) withDefaults() Document {
	for k, v := range Defaults() {
		if _, ok := d[k]; !ok {
			d[k] = v
		}
	}
	return d
}

// Theme returns the configured theme name.
func (d Document) Theme() string {
	if s, ok := d[KeyTheme].(string); ok && s != "" {
		return s
	}
	return DefaultTheme
}

// MetricsPort returns the configured metrics port. JSON numbers arrive as
// float64; numeric strings are accepted too.
func (d Document) MetricsPort() int {
	if port, ok := toInt(d[KeyMetricsPort]); ok {
		return port
	}
	return DefaultMetricsPort
}

// Notifications reports whether notifications are enabled.
func (d Document) Notifications() bool {
	switch v := d[KeyNotifications].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return DefaultNotifications
}

// SentryDSN returns the optional error-reporting DSN.
func (d Document) SentryDSN() (string, bool) {
	s, ok := d[KeySentryDSN].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

// DefaultPath returns the config file path following XDG spec.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "trainer", "config.json")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
