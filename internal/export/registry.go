// ABOUTME: Export registry mapping format names to exporter factories.
// ABOUTME: Registering an existing format replaces it; the last registration wins.
package export

import (
	"sort"
	"sync"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/logging"
	"github.com/harperreed/trainer/internal/models"
	"go.uber.org/zap"
)

// Exporter writes a titled exercise list to a file.
type Exporter interface {
	Export(title string, exercises []models.Exercise, path string) error
}

// Extensioner is implemented by exporters whose file extension differs
// from their format name.
type Extensioner interface {
	Extension() string
}

// Factory creates a fresh exporter for each export.
type Factory func() Exporter

// Registry holds the available export formats.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	log       *zap.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		log:       logging.OrNop(logger),
	}
}

// Register adds or replaces the factory for format.
func (r *Registry) Register(format string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		r.log.Info("exporter replaced", zap.String("format", format))
	}
	r.factories[format] = factory
}

// Get returns a new exporter for format.
func (r *Registry) Get(format string) (Exporter, error) {
	r.mu.RLock()
	factory, ok := r.factories[format]
	r.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("exporter %q not registered", format)
	}
	return factory(), nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for f := range r.factories {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Extension returns the file extension to use for format, without the dot.
func Extension(format string, e Exporter) string {
	if x, ok := e.(Extensioner); ok {
		return x.Extension()
	}
	return format
}

// Columns returns the column keys for a tabular export: the keys present
// on the first exercise. It is nil for an empty list.
func Columns(exercises []models.Exercise) []string {
	if len(exercises) == 0 {
		return nil
	}
	fields := exercises[0].Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// Row returns the values of ex for the given column keys.
func Row(ex models.Exercise, columns []string) []string {
	row := make([]string, len(columns))
	for i, key := range columns {
		row[i] = ex.Get(key)
	}
	return row
}
