// ABOUTME: Facade operations over the configuration store.
// ABOUTME: Theme and document reads, merges, and wipes.
package app

import (
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/config"
)

// Theme returns the saved theme.
func (s *Service) Theme() (string, error) {
	return s.cfg.Theme()
}

// SaveTheme persists a non-empty theme name.
func (s *Service) SaveTheme(theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return apperr.Validation("theme is required")
	}
	return s.cfg.SaveTheme(theme)
}

// Config returns the configuration document.
func (s *Service) Config() (config.Document, error) {
	return s.cfg.Load()
}

// UpdateConfig merges partial into the stored document.
func (s *Service) UpdateConfig(partial config.Document) (config.Document, error) {
	if len(partial) == 0 {
		return s.cfg.Load()
	}
	return s.cfg.Update(partial)
}

// WipeConfig deletes the configuration file. The next read recreates it
// with defaults.
func (s *Service) WipeConfig() error {
	return s.cfg.Delete()
}

// ConfigPath returns the configuration file location.
func (s *Service) ConfigPath() string {
	return s.cfg.Path()
}
