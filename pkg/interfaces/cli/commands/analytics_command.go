package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/interfaces/cli/output"
)

// DefaultTopProducts is the number of top sellers shown when -top is not set
const DefaultTopProducts = 5

var analyticsFormats = []string{"text", "json", "svg"}

// AnalyticsCommand prints dashboard figures for a CSV scenario
type AnalyticsCommand struct {
	config Config
}

// NewAnalyticsCommand creates a new analytics command with the given configuration
func NewAnalyticsCommand(config Config) *AnalyticsCommand {
	if config.Format == "" {
		config.Format = "text"
	}
	if config.TopN == 0 {
		config.TopN = DefaultTopProducts
	}
	return &AnalyticsCommand{config: config}
}

// Execute runs the analytics command
func (c *AnalyticsCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.DataDir == "" {
		return fmt.Errorf("validation error: must specify -data directory containing scenario CSV files")
	}
	if !contains(analyticsFormats, c.config.Format) {
		return fmt.Errorf("validation error: unsupported output format: %s (expected: text, json, svg)", c.config.Format)
	}
	if c.config.TopN < 0 {
		return fmt.Errorf("validation error: -top must be non-negative, got %d", c.config.TopN)
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

	result, err := sf.reportService().Analytics(ctx, dateRange, c.config.TopN)
	if err != nil {
		return fmt.Errorf("error computing analytics: %w", err)
	}

	if c.config.OutputDir == "" {
		return output.WriteAnalytics(c.config.out(), c.config.Format, result)
	}
	return c.writeFile(result)
}

func (c *AnalyticsCommand) writeFile(result *dto.AnalyticsResult) error {
	if err := os.MkdirAll(c.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := c.config.Format
	if ext == "text" {
		ext = "txt"
	}
	filename := filepath.Join(c.config.OutputDir, "analytics."+ext)
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create analytics file: %w", err)
	}
	defer file.Close()

	if err := output.WriteAnalytics(file, c.config.Format, result); err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Fprintf(c.config.out(), "💾 Analytics saved to: %s\n", filename)
	}
	return nil
}

func (c *AnalyticsCommand) showHelp() {
	fmt.Fprint(c.config.out(), `Storefront Analytics - revenue, status and top seller figures

USAGE:
    storefront analytics -data <directory> [OPTIONS]

OPTIONS:
    -data <dir>         Scenario directory with the storefront CSV files
    -start <date>       First day to include, YYYY-MM-DD (optional)
    -end <date>         Last day to include, YYYY-MM-DD (optional)
    -top <n>            Number of top selling products (default: 5)
    -format <fmt>       Output format: text, json, svg (default: text)
    -output <dir>       Write analytics.<ext> into this directory instead of stdout
    -config <file>      Store configuration YAML file (optional)
    -verbose            Enable verbose output
    -help               Show this help message

Top sellers are always computed over every order.
`)
}
