// ABOUTME: File-backed configuration store with atomic writes.
// ABOUTME: Loading a missing file writes the defaults; a corrupt file is left alone.

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/logging"
	"go.uber.org/zap"
)

// Store persists a Document as a JSON file.
type Store struct {
	path string
	log  *zap.Logger

	// mu serializes read-merge-write cycles within this process. Other
	// processes writing the same file still race, last writer wins.
	mu sync.Mutex
}

// NewStore returns a store backed by the file at path. An empty path uses
// DefaultPath.
func NewStore(path string, logger *zap.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, log: logging.OrNop(logger)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file is initialized with the defaults.
// An unreadable or malformed file yields the defaults in memory and is not
// rewritten.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := Defaults()
		if err := s.save(doc); err != nil {
			return nil, err
		}
		s.log.Info("config initialized with defaults", zap.String("path", s.path))
		return doc, nil
	}
	if err != nil {
		s.log.Error("config read failed, using defaults", zap.String("path", s.path), zap.Error(err))
		return Defaults(), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		s.log.Error("config is malformed, using defaults", zap.String("path", s.path), zap.Error(err))
		return Defaults(), nil
	}
	return doc.withDefaults(), nil
}

// Save writes doc atomically: a uniquely named temp file in the same
// directory is renamed over the target.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *Store) save(doc Document) error {
	if doc == nil {
		doc = Document{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return s.fail("create config directory", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperr.Validation("encode config: %v", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return s.fail("write config", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return s.fail("replace config", err)
	}
	return nil
}

// Update merges partial into the stored document and saves the result.
func (s *Store) Update(partial Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	doc.Merge(partial)
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the backing file. A missing file is not an error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return s.fail("delete config", err)
	}
	return nil
}

// Theme returns the stored theme, or the default.
func (s *Store) Theme() (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	return doc.Theme(), nil
}

// SaveTheme persists the theme name, keeping every other key.
func (s *Store) SaveTheme(theme string) error {
	_, err := s.Update(Document{KeyTheme: theme})
	return err
}

func (s *Store) fail(op string, err error) error {
	s.log.Error("config operation failed", zap.String("op", op), zap.String("path", s.path), zap.Error(err))
	return apperr.Storage(op, err)
}
