// ABOUTME: Environment overrides for config location, ports, and plugins.
// ABOUTME: Flags given on the command line take precedence over these.

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
)

// Environment variable names.
const (
	EnvConfigFile      = "CONFIG_FILE"
	EnvMetricsPort     = "METRICS_PORT"
	EnvDisabledPlugins = "DISABLED_PLUGINS"
	EnvDBPath          = "TRAINER_DB"
	EnvSentryDSN       = "SENTRY_DSN"
)

// Env holds the values read from the process environment. Zero values mean
// the variable was unset.
type Env struct {
	ConfigFile      string
	MetricsPort     int
	DisabledPlugins []string
	DBPath          string
	SentryDSN       string
}

// FromEnv reads the environment. A METRICS_PORT that is not a port number is
// reported as a validation error alongside the rest of the values.
func FromEnv() (Env, error) {
	env := Env{
		ConfigFile:      ExpandPath(strings.TrimSpace(os.Getenv(EnvConfigFile))),
		DisabledPlugins: SplitList(os.Getenv(EnvDisabledPlugins)),
		DBPath:          ExpandPath(strings.TrimSpace(os.Getenv(EnvDBPath))),
		SentryDSN:       strings.TrimSpace(os.Getenv(EnvSentryDSN)),
	}

	raw := strings.TrimSpace(os.Getenv(EnvMetricsPort))
	if raw == "" {
		return env, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return env, apperr.Validation("%s=%q is not a valid port", EnvMetricsPort, raw)
	}
	env.MetricsPort = port
	return env, nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConfigPath returns the configured file path, or the default.
func (e Env) ConfigPath() string {
	if e.ConfigFile != "" {
		return e.ConfigFile
	}
	return DefaultPath()
}

// ResolvedMetricsPort applies the METRICS_PORT override to doc.
func ResolvedMetricsPort(doc Document, env Env) int {
	if env.MetricsPort > 0 {
		return env.MetricsPort
	}
	return doc.MetricsPort()
}

// ResolvedSentryDSN prefers SENTRY_DSN over the document value.
func ResolvedSentryDSN(doc Document, env Env) (string, bool) {
	if env.SentryDSN != "" {
		return env.SentryDSN, true
	}
	return doc.SentryDSN()
}
