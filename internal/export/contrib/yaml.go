// ABOUTME: YAML exporter plugin.
// ABOUTME: Writes the title and exercise list as a YAML document.
package contrib

import (
	"os"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes a plan as YAML.
type YAMLExporter struct{}

type yamlPlan struct {
	Title     string            `yaml:"title"`
	Exercises []models.Exercise `yaml:"exercises"`
}

// Export writes the YAML file.
func (e *YAMLExporter) Export(title string, exercises []models.Exercise, path string) error {
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	data, err := yaml.Marshal(yamlPlan{Title: title, Exercises: exercises})
	if err != nil {
		return apperr.Plugin("yaml", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Storage("export yaml", err)
	}
	return nil
}
