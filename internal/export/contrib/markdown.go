// ABOUTME: Markdown exporter plugin.
// ABOUTME: Renders the exercise list as a table under the plan title.
package contrib

import (
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/export"
	"github.com/harperreed/trainer/internal/models"
)

// MarkdownExporter writes a plan as a Markdown table.
type MarkdownExporter struct{}

// Extension implements export.Extensioner.
func (e *MarkdownExporter) Extension() string {
	return "md"
}

// Export writes the Markdown file.
func (e *MarkdownExporter) Export(title string, exercises []models.Exercise, path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(title, exercises)), 0644); err != nil {
		return apperr.Storage("export markdown", err)
	}
	return nil
}

// RenderMarkdown returns the Markdown document for a plan.
func RenderMarkdown(title string, exercises []models.Exercise) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	columns := export.Columns(exercises)
	if columns == nil {
		sb.WriteString("_No exercises._\n")
		return sb.String()
	}

	sb.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("------|", len(columns)) + "\n")
	for _, ex := range exercises {
		row := export.Row(ex, columns)
		for i, v := range row {
			row[i] = escapeCell(v)
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
