package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/product-sheet-extractor/internal/models"
)

const defaultExportName = "product"

var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

type CSVExporter interface {
	Export(result *models.ExtractionResult) []byte
	Filename(result *models.ExtractionResult) string
}

type csvExporter struct{}

func NewCSVExporter() CSVExporter {
	return &csvExporter{}
}

// Export implements CSVExporter. Every data field is quoted, with embedded
// quotes doubled; rows are separated by a single newline.
func (e *csvExporter) Export(result *models.ExtractionResult) []byte {
	var sb strings.Builder
	sb.WriteString("Attribute,Value")

	for _, attr := range result.ExportAttributes() {
		sb.WriteByte('\n')
		sb.WriteString(quoteField(attr.Label))
		sb.WriteByte(',')
		sb.WriteString(quoteField(attr.Value))
	}

	return []byte(sb.String())
}

// Filename implements CSVExporter.
func (e *csvExporter) Filename(result *models.ExtractionResult) string {
	name := result.ProductTitle
	if name == "" {
		name = defaultExportName
	}
	return whitespaceRun.ReplaceAllString(name, "_") + ".csv"
}

func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
