// ABOUTME: Catalog of export plugins shipped alongside the built-ins.
// ABOUTME: Each entry can be disabled by name through DISABLED_PLUGINS.
package contrib

import "github.com/harperreed/trainer/internal/export"

// Catalog returns the shipped plugins.
func Catalog() []export.Plugin {
	return []export.Plugin{
		{
			Name:   "yaml",
			Format: "yaml",
			Load: func() (export.Factory, error) {
				return func() export.Exporter { return &YAMLExporter{} }, nil
			},
		},
		{
			Name:   "markdown",
			Format: "markdown",
			Load: func() (export.Factory, error) {
				return func() export.Exporter { return &MarkdownExporter{} }, nil
			},
		},
	}
}
