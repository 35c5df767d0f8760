package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/liquorstore/pkg/infrastructure/events"
	httpapi "github.com/vsinha/liquorstore/pkg/interfaces/http"
)

// ServeCommand runs the storefront HTTP API over a scenario held in memory
type ServeCommand struct {
	config Config
}

// NewServeCommand creates a new serve command with the given configuration
func NewServeCommand(config Config) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	sf, err := openStorefront(c.config, true)
	if err != nil {
		return err
	}
	defer func() { _ = sf.logger.Sync() }()

	checkoutSvc, err := sf.checkoutService(c.config.Clock)
	if err != nil {
		return err
	}

	if err := sf.events.Subscribe(
		[]string{events.OrderPlacedEvent, events.OrderStatusChangedEvent},
		eventLogger(sf.logger),
	); err != nil {
		return fmt.Errorf("failed to subscribe to order events: %w", err)
	}

	handler := httpapi.NewHandler(checkoutSvc, sf.reportService(), sf.location, sf.logger)
	router := httpapi.NewRouter(handler)

	sf.logger.Info("storefront loaded",
		zap.String("data_dir", c.config.DataDir),
		zap.Int("products", len(sf.scenario.Products)),
		zap.Int("users", len(sf.scenario.Users)),
		zap.Int("orders", len(sf.scenario.Orders)))

	return httpapi.Serve(ctx, httpapi.ServerConfig{
		Address:         sf.config.HTTP.Address,
		ReadTimeout:     sf.config.HTTP.ReadTimeout,
		WriteTimeout:    sf.config.HTTP.WriteTimeout,
		ShutdownTimeout: sf.config.HTTP.ShutdownTimeout,
	}, router, sf.logger)
}

// eventLogger records every order event in the service log
func eventLogger(logger *zap.Logger) events.EventHandler {
	return &events.HandlerFunc{
		Types: []string{events.OrderPlacedEvent, events.OrderStatusChangedEvent},
		Fn: func(event events.Event) error {
			logger.Info("order event",
				zap.String("event_id", event.ID()),
				zap.String("type", event.Type()),
				zap.String("stream", event.StreamID()),
				zap.Time("at", event.Timestamp()))
			return nil
		},
	}
}

func (c *ServeCommand) showHelp() {
	fmt.Fprint(c.config.out(), `Storefront API - serve checkout, orders, reports and analytics over HTTP

USAGE:
    storefront serve [OPTIONS]

OPTIONS:
    -data <dir>         Scenario directory to preload (optional, empty store otherwise)
    -config <file>      Store configuration YAML file (optional)
    -addr <address>     Listen address, overrides http.address (default from config: :8080)
    -help               Show this help message

ENVIRONMENT:
    STOREFRONT_* variables override the configuration file, e.g.
    STOREFRONT_STORE_TAX_RATE=0.08 STOREFRONT_HTTP_ADDRESS=:9090
`)
}
