package output

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/vsinha/liquorstore/pkg/application/services/reports"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(template.New("report.html").ParseFS(templateFS, "templates/report.html"))

type summaryLine struct {
	Label string
	Value string
}

type reportPage struct {
	Title   string
	Summary []summaryLine
	Headers []string
	Rows    [][]string
}

// WriteReportHTML renders a report as a printable HTML page
func WriteReportHTML(w io.Writer, record *entities.ReportRecord) error {
	page := reportPage{
		Title:   ReportTitle(record.Type),
		Headers: record.Headers,
		Rows:    record.Rows,
	}
	for _, field := range record.Summary {
		page.Summary = append(page.Summary, summaryLine{
			Label: reports.FormatLabel(field.Key),
			Value: reports.FormatSummaryValue(field.Key, field.Value),
		})
	}

	if err := reportTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
