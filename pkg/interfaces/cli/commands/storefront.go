package commands

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/liquorstore/pkg/application/services/checkout"
	"github.com/vsinha/liquorstore/pkg/application/services/reports"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/infrastructure/clock"
	"github.com/vsinha/liquorstore/pkg/infrastructure/config"
	"github.com/vsinha/liquorstore/pkg/infrastructure/events"
	"github.com/vsinha/liquorstore/pkg/infrastructure/logging"
	"github.com/vsinha/liquorstore/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/liquorstore/pkg/infrastructure/repositories/memory"
)

// storefront is a store loaded into memory repositories and ready to serve
type storefront struct {
	config   *config.Config
	logger   *zap.Logger
	location *time.Location
	scenario *csv.Scenario

	settings *memory.SettingsRepository
	products *memory.ProductRepository
	users    *memory.UserRepository
	orders   *memory.OrderRepository
	events   *events.InMemoryEventStore
}

// openStorefront loads configuration and the optional CSV scenario. With
// withLogging false the services log nothing, which keeps one-shot command
// output clean.
func openStorefront(c Config, withLogging bool) (*storefront, error) {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.Address != "" {
		cfg.HTTP.Address = c.Address
	}

	logger := zap.NewNop()
	if withLogging {
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return nil, err
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	settings, err := cfg.StoreSettings()
	if err != nil {
		return nil, err
	}

	scenario := &csv.Scenario{}
	if c.DataDir != "" {
		scenario, err = csv.NewLoader().LoadScenario(c.DataDir)
		if err != nil {
			return nil, fmt.Errorf("error loading scenario: %w", err)
		}
	}
	linkOrderHistory(scenario)

	sf := &storefront{
		config:   cfg,
		logger:   logger,
		location: loc,
		scenario: scenario,
		settings: memory.NewSettingsRepository(settings),
		products: memory.NewProductRepository(len(scenario.Products)),
		users:    memory.NewUserRepository(len(scenario.Users)),
		orders:   memory.NewOrderRepository(),
		events:   events.NewInMemoryEventStore(logger),
	}

	if err := sf.products.LoadProducts(scenario.Products); err != nil {
		return nil, fmt.Errorf("failed to load products into repository: %w", err)
	}
	if err := sf.users.LoadUsers(scenario.Users); err != nil {
		return nil, fmt.Errorf("failed to load users into repository: %w", err)
	}
	if err := sf.orders.LoadOrders(scenario.Orders); err != nil {
		return nil, fmt.Errorf("failed to load orders into repository: %w", err)
	}

	return sf, nil
}

func (s *storefront) checkoutService(clk clock.Clock) (*checkout.Service, error) {
	planner, err := s.config.Planner()
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.NewSystem(s.location)
	}

	return checkout.NewService(checkout.Dependencies{
		Settings: s.settings,
		Products: s.products,
		Orders:   s.orders,
		Users:    s.users,
		Planner:  planner,
		Clock:    clk,
		Events:   s.events,
		Logger:   s.logger,
	})
}

func (s *storefront) reportService() *reports.Service {
	return reports.NewService(s.orders, s.products, s.users, reports.NewAggregator(s.location), s.logger)
}

func (s *storefront) printSummary(c Config) {
	fmt.Fprintf(c.out(), "✅ Data loaded successfully:\n")
	fmt.Fprintf(c.out(), "  Products: %d\n", len(s.scenario.Products))
	fmt.Fprintf(c.out(), "  Users: %d\n", len(s.scenario.Users))
	fmt.Fprintf(c.out(), "  Orders: %d\n", len(s.scenario.Orders))
	fmt.Fprintln(c.out())
}

// linkOrderHistory rebuilds each user's order history from the loaded orders,
// since users.csv does not carry it
func linkOrderHistory(scenario *csv.Scenario) {
	index := entities.NewUserIndex(scenario.Users)
	for _, order := range scenario.Orders {
		user, ok := index[order.UserID]
		if !ok {
			continue
		}
		if !contains(user.OrderHistory, order.ID) {
			user.OrderHistory = append(user.OrderHistory, order.ID)
		}
	}
}

