package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/application/services/reports"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// ReportFormats lists the formats a report can be written in
var ReportFormats = []string{"text", "json", "csv", "html"}

// Generate writes a report to stdout, or to <type>_report.<ext> in OutputDir
func Generate(record *entities.ReportRecord, config Config) error {
	if config.OutputDir == "" {
		return WriteReport(os.Stdout, config.Format, record)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, fmt.Sprintf("%s_report.%s", record.Type, extension(config.Format)))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := WriteReport(file, config.Format, record); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("💾 Report saved to: %s\n", filename)
	}
	return nil
}

// WriteReport renders a report in the given format
func WriteReport(w io.Writer, format string, record *entities.ReportRecord) error {
	switch format {
	case "text", "":
		return writeReportText(w, record)
	case "json":
		return writeJSON(w, record)
	case "csv":
		return writeReportCSV(w, record)
	case "html":
		return WriteReportHTML(w, record)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// ContentType returns the MIME type of a report format
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func extension(format string) string {
	if format == "text" || format == "" {
		return "txt"
	}
	return format
}

// ReportTitle names a report for display, e.g. "Sales Report"
func ReportTitle(reportType entities.ReportType) string {
	return reports.FormatLabel(reportType.String()) + " Report"
}

// writeReportText creates human-readable text output
func writeReportText(w io.Writer, record *entities.ReportRecord) error {
	title := ReportTitle(record.Type)
	fmt.Fprintf(w, "📊 %s\n", title)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(title)+3))

	for _, field := range record.Summary {
		fmt.Fprintf(w, "%s: %s\n", reports.FormatLabel(field.Key), reports.FormatSummaryValue(field.Key, field.Value))
	}
	fmt.Fprintln(w)

	if len(record.Rows) == 0 {
		fmt.Fprintln(w, "No data for the selected period.")
		return nil
	}

	widths := make([]int, len(record.Headers))
	for i, header := range record.Headers {
		widths[i] = len(header)
	}
	for _, row := range record.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeTextRow(w, widths, record.Headers)
	dashes := make([]string, len(widths))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}
	writeTextRow(w, widths, dashes)
	for _, row := range record.Rows {
		writeTextRow(w, widths, row)
	}
	return nil
}

func writeTextRow(w io.Writer, widths []int, cells []string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// writeReportCSV writes headers then rows. Summary values are not part of the table.
func writeReportCSV(w io.Writer, record *entities.ReportRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(record.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(record.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// WriteSlots renders pickup slots as text or JSON
func WriteSlots(w io.Writer, format string, result *dto.SlotsResult) error {
	switch format {
	case "json":
		return writeJSON(w, result)
	case "text", "":
		fmt.Fprintf(w, "🕒 Pickup slots for %s (hours %s)\n", result.Date, result.Hours)
		if result.Closed {
			fmt.Fprintln(w, "No pickup times are available today.")
			return nil
		}
		for _, slot := range result.Slots {
			fmt.Fprintf(w, "  %s  %s\n", slot.Value, slot.Label)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteAnalytics renders dashboard figures as text, JSON or an SVG revenue chart
func WriteAnalytics(w io.Writer, format string, result *dto.AnalyticsResult) error {
	switch format {
	case "json":
		return writeJSON(w, result)
	case "svg":
		_, err := io.WriteString(w, NewRevenueChart(result.RevenueByDate).GenerateSVG(result.RevenueByDate))
		return err
	case "text", "":
		fmt.Fprintf(w, "📈 Analytics\n============\n\n")
		fmt.Fprintf(w, "Total Orders: %d\n", result.TotalOrders)
		fmt.Fprintf(w, "Total Revenue: %s\n", reports.FormatCurrency(result.TotalRevenue))
		fmt.Fprintf(w, "Customer Lifetime Value: %s\n\n", reports.FormatCurrency(result.CustomerLifetimeValue))

		fmt.Fprintf(w, "Revenue by date:\n")
		for _, d := range result.RevenueByDate {
			fmt.Fprintf(w, "  %-12s %12s\n", d.Date, reports.FormatCurrency(d.Revenue))
		}
		fmt.Fprintf(w, "\nOrders by status:\n")
		for _, s := range result.StatusCounts {
			fmt.Fprintf(w, "  %-12s %5d\n", s.Status, s.Count)
		}
		fmt.Fprintf(w, "\nRevenue by category:\n")
		for _, c := range result.RevenueByCategory {
			fmt.Fprintf(w, "  %-15s %12s\n", c.Category, reports.FormatCurrency(c.Revenue))
		}
		fmt.Fprintf(w, "\nTop selling products:\n")
		for i, p := range result.TopSellingProducts {
			fmt.Fprintf(w, "  %d. %s - %d units - %s\n", i+1, p.Name, p.Quantity, reports.FormatCurrency(p.Amount))
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
