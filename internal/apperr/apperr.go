// ABOUTME: Error kinds shared by the store, config, export, and facade layers.
// ABOUTME: Callers classify failures with errors.Is against these sentinels.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller-supplied data that fails a precondition.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced id, format, or plugin that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a database or filesystem failure.
	ErrStorage = errors.New("storage error")
	// ErrPlugin marks an exporter plugin that failed to load or run.
	ErrPlugin = errors.New("plugin error")
)

// Validation returns an ErrValidation with a formatted message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Storage tags err as a storage failure of op. The original error stays
// reachable through errors.Is and errors.As.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Plugin tags err as a failure of the named plugin.
func Plugin(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("plugin %s: %w: %w", name, ErrPlugin, err)
}
