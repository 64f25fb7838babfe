// ABOUTME: Built-in exporters registered at startup.
// ABOUTME: PDF, CSV, and XLSX are always available.
package export

// RegisterBuiltins adds the pdf, csv, and xlsx formats to r.
func RegisterBuiltins(r *Registry) {
	r.Register("pdf", func() Exporter { return &PDFExporter{} })
	r.Register("csv", func() Exporter { return &CSVExporter{} })
	r.Register("xlsx", func() Exporter { return &XLSXExporter{} })
}
