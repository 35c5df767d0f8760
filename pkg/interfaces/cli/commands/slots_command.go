package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/liquorstore/pkg/interfaces/cli/output"
)

// SlotsCommand prints the pickup slots still bookable today
type SlotsCommand struct {
	config Config
}

// NewSlotsCommand creates a new slots command with the given configuration
func NewSlotsCommand(config Config) *SlotsCommand {
	if config.Format == "" {
		config.Format = "text"
	}
	return &SlotsCommand{config: config}
}

// Execute runs the slots command
func (c *SlotsCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.Format != "text" && c.config.Format != "json" {
		return fmt.Errorf("validation error: unsupported output format: %s (expected: text, json)", c.config.Format)
	}

	sf, err := openStorefront(c.config, false)
	if err != nil {
		return err
	}
	svc, err := sf.checkoutService(c.config.Clock)
	if err != nil {
		return err
	}

	result, err := svc.PickupSlots(ctx)
	if err != nil {
		return fmt.Errorf("error generating pickup slots: %w", err)
	}
	return output.WriteSlots(c.config.out(), c.config.Format, result)
}

func (c *SlotsCommand) showHelp() {
	fmt.Fprint(c.config.out(), `Storefront Pickup Slots - list today's bookable pickup times

USAGE:
    storefront slots [OPTIONS]

OPTIONS:
    -config <file>      Store configuration YAML file with business hours and timezone
    -format <fmt>       Output format: text, json (default: text)
    -help               Show this help message
`)
}
