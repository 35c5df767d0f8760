package commands

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/services"
	"github.com/vsinha/liquorstore/pkg/infrastructure/config"
	"github.com/vsinha/liquorstore/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Products   int    // Number of catalog products
	Users      int    // Number of customer profiles
	Orders     int    // Number of historical orders
	Days       int    // Orders are spread over this many days ending at Until
	Until      string // Last order day, YYYY-MM-DD (default: today)
	OutputDir  string // Output directory for generated files
	ConfigFile string // Store configuration providing hours, tax rate and item cap
	Seed       int64  // Random seed for reproducible generation
	Help       bool
	Verbose    bool
}

// GenerateCommand writes a synthetic storefront scenario
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Days <= 0 {
		config.Days = 30
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

type catalogEntry struct {
	name     string
	category string
	price    string
}

var catalogTemplates = []catalogEntry{
	{"Rye Whiskey", "Whiskey", "24.99"},
	{"Single Malt Scotch", "Whiskey", "54.00"},
	{"Kentucky Bourbon", "Whiskey", "32.50"},
	{"London Dry Gin", "Gin", "19.50"},
	{"Navy Strength Gin", "Gin", "36.00"},
	{"Blanco Tequila", "Tequila", "27.99"},
	{"Reposado Tequila", "Tequila", "39.95"},
	{"Dark Rum", "Rum", "21.00"},
	{"Pinot Noir", "Wine", "16.75"},
	{"Sauvignon Blanc", "Wine", "12.99"},
	{"IPA Six Pack", "Beer", "11.00"},
	{"Pilsner Twelve Pack", "Beer", "17.49"},
}

var firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Ken", "Margaret", "Dennis", "Frances", "Donald"}
var lastNames = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Thompson", "Hamilton", "Ritchie", "Allen", "Knuth"}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(cmd.config.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := cfg.StoreSettings()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	planner, err := cfg.Planner()
	if err != nil {
		return err
	}

	until := time.Now().In(loc)
	if cmd.config.Until != "" {
		until, err = time.ParseInLocation(dto.DateLayout, cmd.config.Until, loc)
		if err != nil {
			return fmt.Errorf("validation error: invalid -until date %q (expected YYYY-MM-DD)", cmd.config.Until)
		}
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating scenario with %d products, %d users, %d orders over %d days\n",
			cmd.config.Products, cmd.config.Users, cmd.config.Orders, cmd.config.Days)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	products, err := cmd.generateProducts()
	if err != nil {
		return fmt.Errorf("failed to generate products: %w", err)
	}
	users, err := cmd.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}
	orders := cmd.generateOrders(products, users, settings, planner, until)

	if err := csv.NewWriter().WriteScenario(cmd.config.OutputDir, &csv.Scenario{
		Products: products,
		Users:    users,
		Orders:   orders,
	}); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s (%d orders)\n", cmd.config.OutputDir, len(orders))
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("must specify -output directory")
	}
	if cmd.config.Products < 1 {
		return fmt.Errorf("-products must be at least 1")
	}
	if cmd.config.Users < 1 {
		return fmt.Errorf("-users must be at least 1")
	}
	if cmd.config.Orders < 0 {
		return fmt.Errorf("-orders cannot be negative")
	}
	return nil
}

func (cmd *GenerateCommand) generateProducts() ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, cmd.config.Products)
	for i := 0; i < cmd.config.Products; i++ {
		tmpl := catalogTemplates[i%len(catalogTemplates)]
		name := tmpl.name
		if i >= len(catalogTemplates) {
			name = fmt.Sprintf("%s No. %d", tmpl.name, i/len(catalogTemplates)+1)
		}
		product, err := entities.NewProduct(
			fmt.Sprintf("SKU-%04d", i+1),
			name,
			tmpl.category,
			decimal.RequireFromString(tmpl.price),
			cmd.rand.Intn(48),
		)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (cmd *GenerateCommand) generateUsers() ([]*entities.User, error) {
	users := make([]*entities.User, 0, cmd.config.Users)
	for i := 0; i < cmd.config.Users; i++ {
		first := firstNames[cmd.rand.Intn(len(firstNames))]
		last := lastNames[cmd.rand.Intn(len(lastNames))]
		user, err := entities.NewUser(
			fmt.Sprintf("USR-%04d", i+1),
			first+" "+last,
			fmt.Sprintf("%s.%s%d@example.com", first, last, i+1),
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// generateOrders places orders through the pricer so totals, pickup slots and
// item caps follow the same rules as live checkout. Attempts that land after
// closing are skipped.
func (cmd *GenerateCommand) generateOrders(
	products []*entities.Product,
	users []*entities.User,
	settings entities.StoreSettings,
	planner *services.PickupSlotPlanner,
	until time.Time,
) []*entities.Order {
	orders := make([]*entities.Order, 0, cmd.config.Orders)
	for attempt := 0; len(orders) < cmd.config.Orders && attempt < cmd.config.Orders*4; attempt++ {
		createdAt := cmd.generateCreatedAt(settings.BusinessHours, until)
		slots := planner.GenerateSlots(settings.BusinessHours, createdAt)
		if len(slots) == 0 {
			continue
		}

		user := users[cmd.rand.Intn(len(users))]
		order, err := services.BuildOrder(services.OrderRequest{
			Customer:   entities.Customer{UserID: user.ID, Name: user.Name, Email: user.Email},
			Lines:      cmd.generateLines(products, settings.ItemCap),
			PickupSlot: slots[cmd.rand.Intn(len(slots))].Value,
			ValidSlots: slots,
			ItemCap:    settings.ItemCap,
			TaxRate:    settings.DefaultTax,
			Now:        createdAt,
		})
		if err != nil {
			continue
		}

		order.ID = fmt.Sprintf("ORD-%05d", len(orders)+1)
		order.Status = cmd.generateStatus()
		orders = append(orders, order)
	}
	return orders
}

func (cmd *GenerateCommand) generateCreatedAt(hours entities.BusinessHours, until time.Time) time.Time {
	day := until.AddDate(0, 0, -cmd.rand.Intn(cmd.config.Days))
	openAt, closeAt := 9*60, 21*60
	if hours.IsSet() {
		openAt, closeAt = hours.Open.Minutes(), hours.Close.Minutes()
	}
	// Start an hour before opening so some shoppers order ahead
	from := openAt - 60
	if from < 0 {
		from = 0
	}
	minute := from
	if closeAt > from {
		minute += cmd.rand.Intn(closeAt - from)
	}
	return entities.TimeOfDayFromMinutes(minute).On(day)
}

func (cmd *GenerateCommand) generateLines(products []*entities.Product, itemCap int) []entities.CartLine {
	distinct := 1 + cmd.rand.Intn(3)
	seen := make(map[string]bool, distinct)
	lines := make([]entities.CartLine, 0, distinct)
	remaining := itemCap

	for i := 0; i < distinct && remaining > 0; i++ {
		product := products[cmd.rand.Intn(len(products))]
		if seen[product.ID] {
			continue
		}
		seen[product.ID] = true

		quantity := 1 + cmd.rand.Intn(3)
		if quantity > remaining {
			quantity = remaining
		}
		remaining -= quantity
		lines = append(lines, entities.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}
	return lines
}

// generateStatus favours delivered orders, as most history is fulfilled
func (cmd *GenerateCommand) generateStatus() entities.OrderStatus {
	switch r := cmd.rand.Intn(100); {
	case r < 55:
		return entities.Delivered
	case r < 75:
		return entities.Processing
	case r < 90:
		return entities.Shipped
	default:
		return entities.Cancelled
	}
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Println(`Storefront Scenario Generator

USAGE:
    storefront generate [OPTIONS]

OPTIONS:
    -products <N>       Number of catalog products (default: 12)
    -users <N>          Number of customers (default: 25)
    -orders <N>         Number of historical orders (default: 200)
    -days <N>           Spread orders over this many days (default: 30)
    -until <date>       Last order day, YYYY-MM-DD (default: today)
    -output <DIR>       Output directory for generated files (required)
    -config <file>      Store configuration YAML file (optional)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a month of history
    storefront generate -output ./scenario

    # Generate reproducible scenario
    storefront generate -orders 1000 -days 90 -until 2025-06-30 -output ./repro_scenario -seed 12345`)
}
