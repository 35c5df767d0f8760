package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/interfaces/cli/output"
)

// ReportCommand builds a sales, products or customers report from a CSV scenario
type ReportCommand struct {
	config Config
}

// NewReportCommand creates a new report command with the given configuration
func NewReportCommand(config Config) *ReportCommand {
	if config.ReportType == "" {
		config.ReportType = "sales"
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &ReportCommand{config: config}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	reportType, err := entities.ParseReportType(c.config.ReportType)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
		fmt.Fprintln(c.config.out(), "📂 Loading data from CSV files...")
	}

	sf, err := openStorefront(c.config, false)
	if err != nil {
		return err
	}
	if c.config.Verbose {
		sf.printSummary(c.config)
	}

	dateRange, err := dto.ParseDateRange(c.config.StartDate, c.config.EndDate, sf.location)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	record, err := sf.reportService().Generate(ctx, reportType, dateRange)
	if err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}

	if c.config.OutputDir == "" {
		return output.WriteReport(c.config.out(), c.config.Format, record)
	}
	return output.Generate(record, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

func (c *ReportCommand) validateInputs() error {
	if c.config.DataDir == "" {
		return fmt.Errorf("must specify -data directory containing scenario CSV files")
	}
	if !contains(output.ReportFormats, c.config.Format) {
		return fmt.Errorf("unsupported output format: %s (expected: %s)", c.config.Format, strings.Join(output.ReportFormats, ", "))
	}
	return nil
}

func (c *ReportCommand) printHeader() {
	out := c.config.out()
	fmt.Fprintf(out, "🚀 Storefront Reports\n")
	fmt.Fprintf(out, "Data directory: %s\n", c.config.DataDir)
	fmt.Fprintf(out, "Report type: %s\n", c.config.ReportType)
	if c.config.StartDate != "" || c.config.EndDate != "" {
		fmt.Fprintf(out, "Date range: %s to %s\n", c.config.StartDate, c.config.EndDate)
	}
	fmt.Fprintf(out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(out)
}

func (c *ReportCommand) showHelp() {
	fmt.Fprint(c.config.out(), `Storefront Reports - sales, products and customers reports from order history

USAGE:
    storefront report -data <directory> [OPTIONS]

OPTIONS:
    -data <dir>         Scenario directory with products.csv, users.csv, orders.csv and order_lines.csv
    -type <type>        Report type: sales, products, customers (default: sales)
    -start <date>       First day to include, YYYY-MM-DD (optional)
    -end <date>         Last day to include, YYYY-MM-DD (optional)
    -format <fmt>       Output format: text, json, csv, html (default: text)
    -output <dir>       Write <type>_report.<ext> into this directory instead of stdout
    -config <file>      Store configuration YAML file (optional)
    -verbose            Enable verbose output
    -help               Show this help message

A date range filters only when both -start and -end are given.

EXAMPLES:
    storefront report -data ./testdata/storefront -type products
    storefront report -data ./testdata/storefront -type sales -start 2025-06-01 -end 2025-06-30 -format csv -output ./reports
`)
}
