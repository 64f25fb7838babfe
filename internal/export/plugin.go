// ABOUTME: Plugin discovery for additional export formats.
// ABOUTME: The catalog is loaded once and cached; disabled names are skipped.
package export

import (
	"sync"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/logging"
	"go.uber.org/zap"
)

// Plugin contributes one export format. Load is called at most once per
// Loader.
type Plugin struct {
	Name   string
	Format string
	Load   func() (Factory, error)
}

type loadedPlugin struct {
	name    string
	format  string
	factory Factory
}

// Loader discovers plugins from a fixed catalog.
type Loader struct {
	catalog  []Plugin
	disabled map[string]bool
	log      *zap.Logger

	once   sync.Once
	loaded []loadedPlugin
}

// NewLoader returns a loader over catalog that skips the disabled names.
func NewLoader(catalog []Plugin, disabled []string, logger *zap.Logger) *Loader {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	return &Loader{
		catalog:  catalog,
		disabled: skip,
		log:      logging.OrNop(logger),
	}
}

// Discover loads the catalog on first use and returns the names of the
// plugins that loaded. Later calls return the cached result.
func (l *Loader) Discover() []string {
	l.once.Do(l.discover)

	names := make([]string, len(l.loaded))
	for i, p := range l.loaded {
		names[i] = p.name
	}
	return names
}

func (l *Loader) discover() {
	for _, p := range l.catalog {
		if l.disabled[p.Name] {
			l.log.Info("plugin disabled", zap.String("plugin", p.Name))
			continue
		}
		if p.Load == nil {
			l.log.Error("plugin has no loader", zap.String("plugin", p.Name))
			continue
		}

		factory, err := p.Load()
		if err == nil && factory == nil {
			err = apperr.Validation("plugin returned no factory")
		}
		if err != nil {
			l.log.Error("failed to load plugin",
				zap.String("plugin", p.Name),
				zap.Error(apperr.Plugin(p.Name, err)))
			continue
		}

		l.loaded = append(l.loaded, loadedPlugin{name: p.Name, format: p.Format, factory: factory})
		l.log.Debug("plugin loaded", zap.String("plugin", p.Name), zap.String("format", p.Format))
	}
}

// Apply registers every discovered plugin in r. Run it after
// RegisterBuiltins so a plugin can take over a built-in format.
func (l *Loader) Apply(r *Registry) {
	l.Discover()
	for _, p := range l.loaded {
		r.Register(p.format, p.factory)
	}
}

// NewDefaultRegistry returns a registry with the built-ins and the
// plugins of l applied in that order. A nil loader yields only built-ins.
func NewDefaultRegistry(l *Loader, logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	RegisterBuiltins(r)
	if l != nil {
		l.Apply(r)
	}
	return r
}
