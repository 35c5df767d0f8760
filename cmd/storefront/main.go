package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/liquorstore/pkg/interfaces/cli/commands"
)

// command is what every storefront subcommand provides
type command interface {
	Execute(ctx context.Context) error
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, err := parse(os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if cmd == nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func parse(name string, args []string) (command, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	var config commands.Config
	fs.StringVar(&config.ConfigFile, "config", "", "Store configuration YAML file")
	fs.BoolVar(&config.Help, "help", false, "Show help message")

	switch name {
	case "report":
		addDataFlags(fs, &config)
		fs.StringVar(&config.ReportType, "type", "sales", "Report type: sales, products, customers")
		fs.StringVar(&config.Format, "format", "text", "Output format: text, json, csv, html")
		fs.StringVar(&config.OutputDir, "output", "", "Output directory for results (optional)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewReportCommand(config), nil

	case "analytics":
		addDataFlags(fs, &config)
		fs.IntVar(&config.TopN, "top", commands.DefaultTopProducts, "Number of top selling products")
		fs.StringVar(&config.Format, "format", "text", "Output format: text, json, svg")
		fs.StringVar(&config.OutputDir, "output", "", "Output directory for results (optional)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewAnalyticsCommand(config), nil

	case "slots":
		fs.StringVar(&config.Format, "format", "text", "Output format: text, json")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewSlotsCommand(config), nil

	case "serve":
		fs.StringVar(&config.DataDir, "data", "", "Scenario directory to preload (optional)")
		fs.StringVar(&config.Address, "addr", "", "Listen address, overrides http.address")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return commands.NewServeCommand(config), nil

	case "generate":
		var gen commands.GenerateConfig
		fs.IntVar(&gen.Products, "products", 12, "Number of catalog products")
		fs.IntVar(&gen.Users, "users", 25, "Number of customers")
		fs.IntVar(&gen.Orders, "orders", 200, "Number of historical orders")
		fs.IntVar(&gen.Days, "days", 30, "Spread orders over this many days")
		fs.StringVar(&gen.Until, "until", "", "Last order day, YYYY-MM-DD (default: today)")
		fs.StringVar(&gen.OutputDir, "output", "", "Output directory for generated files")
		fs.Int64Var(&gen.Seed, "seed", 0, "Random seed for reproducible generation")
		fs.BoolVar(&gen.Verbose, "verbose", false, "Enable verbose output")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		gen.ConfigFile = config.ConfigFile
		gen.Help = config.Help
		return commands.NewGenerateCommand(gen), nil

	case "help", "-help", "--help", "-h":
		usage()
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown command %q (run 'storefront help')", name)
	}
}

func addDataFlags(fs *flag.FlagSet, config *commands.Config) {
	fs.StringVar(&config.DataDir, "data", "", "Scenario directory containing CSV files")
	fs.StringVar(&config.StartDate, "start", "", "First day to include, YYYY-MM-DD")
	fs.StringVar(&config.EndDate, "end", "", "Last day to include, YYYY-MM-DD")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable verbose output")
}

func usage() {
	fmt.Fprint(os.Stderr, `Storefront - pickup checkout and order reporting for a liquor store

USAGE:
    storefront <command> [OPTIONS]

COMMANDS:
    report      Sales, products or customers report from a CSV scenario
    analytics   Revenue, status and top seller figures
    slots       Pickup slots still bookable today
    serve       HTTP API over a scenario held in memory
    generate    Write a synthetic CSV scenario
    help        Show this help message

Run 'storefront <command> -help' for command options.
`)
}
