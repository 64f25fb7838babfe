// ABOUTME: XLSX exporter built on excelize.
// ABOUTME: The workbook has one sheet named after the plan title.
package export

import (
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// XLSXExporter writes exercises to an Excel workbook.
type XLSXExporter struct{}

// Export writes the workbook.
func (e *XLSXExporter) Export(title string, exercises []models.Exercise, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return apperr.Storage("export xlsx", err)
	}

	columns := Columns(exercises)
	if columns != nil {
		if err := setRow(f, sheet, 1, columns); err != nil {
			return err
		}
		for i, ex := range exercises {
			if err := setRow(f, sheet, i+2, Row(ex, columns)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperr.Storage("export xlsx", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperr.Storage("export xlsx", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return apperr.Storage("export xlsx", err)
	}
	return nil
}

// SheetName turns a title into a valid worksheet name: forbidden
// characters become spaces, the result is at most 31 characters, and an
// empty result falls back to "Sheet1".
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, title)
	name = strings.Trim(strings.TrimSpace(name), "'")

	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = strings.TrimSpace(string(runes[:maxSheetNameLen]))
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
