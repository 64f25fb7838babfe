// ABOUTME: PDF exporter built on go-pdf/fpdf.
// ABOUTME: Renders the title and one line per exercise.
package export

import (
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
)

// PDFExporter writes a one-column PDF listing.
type PDFExporter struct{}

// Export writes the PDF file.
func (e *PDFExporter) Export(title string, exercises []models.Exercise, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	for _, ex := range exercises {
		pdf.MultiCell(0, 10, tr(ExerciseLine(ex)), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperr.Storage("export pdf", err)
	}
	return nil
}

// ExerciseLine formats an exercise as "name - SETSxREPS [load] [descanso R] (note)".
func ExerciseLine(ex models.Exercise) string {
	var b strings.Builder
	b.WriteString(ex.Name)
	b.WriteString(" - ")
	b.WriteString(strconv.Itoa(int(ex.Sets)))
	b.WriteString("x")
	b.WriteString(strconv.Itoa(int(ex.Reps)))
	if ex.Load != "" {
		b.WriteString(" " + ex.Load)
	}
	if ex.Rest != "" {
		b.WriteString(" descanso " + ex.Rest)
	}
	if ex.Note != "" {
		b.WriteString(" (" + ex.Note + ")")
	}
	return b.String()
}
