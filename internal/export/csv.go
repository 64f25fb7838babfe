// ABOUTME: CSV exporter writing one row per exercise under a header row.
// ABOUTME: An empty exercise list produces an empty file.
package export

import (
	"encoding/csv"
	"os"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
)

// CSVExporter writes exercises as comma separated values.
type CSVExporter struct{}

// Export writes the CSV file. The title is not part of the output.
func (e *CSVExporter) Export(_ string, exercises []models.Exercise, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return apperr.Storage("export csv", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperr.Storage("export csv", cerr)
		}
	}()

	columns := Columns(exercises)
	if columns == nil {
		return nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return apperr.Storage("export csv", err)
	}
	for _, ex := range exercises {
		if err := w.Write(Row(ex, columns)); err != nil {
			return apperr.Storage("export csv", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperr.Storage("export csv", err)
	}
	return nil
}
