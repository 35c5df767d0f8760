package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// Scenario file names inside a data directory
const (
	ProductsFile   = "products.csv"
	UsersFile      = "users.csv"
	OrdersFile     = "orders.csv"
	OrderLinesFile = "order_lines.csv"
)

var (
	productsHeader   = []string{"id", "name", "category", "price", "stock"}
	usersHeader      = []string{"id", "name", "email"}
	ordersHeader     = []string{"id", "user_id", "customer_name", "customer_email", "pickup_time", "pickup_instructions", "subtotal", "tax", "total", "status", "created_at"}
	orderLinesHeader = []string{"order_id", "product_id", "name", "price", "quantity"}
)

// Loader handles loading storefront snapshots from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Scenario is everything loaded from a data directory
type Scenario struct {
	Products []*entities.Product
	Users    []*entities.User
	Orders   []*entities.Order
}

// LoadScenario loads products, users and orders from the standard file names in dir
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	products, err := l.LoadProducts(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, err
	}
	users, err := l.LoadUsers(filepath.Join(dir, UsersFile))
	if err != nil {
		return nil, err
	}
	orders, err := l.LoadOrders(filepath.Join(dir, OrdersFile), filepath.Join(dir, OrderLinesFile))
	if err != nil {
		return nil, err
	}

	return &Scenario{Products: products, Users: users, Orders: orders}, nil
}

// LoadProducts loads the catalog from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readRecords(filename, "products", productsHeader)
	if err != nil {
		return nil, err
	}

	var products []*entities.Product
	for i, record := range records {
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}

	return products, nil
}

// LoadUsers loads customer profiles from a CSV file
func (l *Loader) LoadUsers(filename string) ([]*entities.User, error) {
	records, err := readRecords(filename, "users", usersHeader)
	if err != nil {
		return nil, err
	}

	var users []*entities.User
	for i, record := range records {
		user, err := entities.NewUser(strings.TrimSpace(record[0]), strings.TrimSpace(record[1]), strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("users CSV row %d: %w", i+2, err)
		}
		users = append(users, user)
	}

	return users, nil
}

// LoadOrders loads order headers and joins their lines. Lines referencing an
// unknown order are rejected.
func (l *Loader) LoadOrders(ordersFilename, linesFilename string) ([]*entities.Order, error) {
	records, err := readRecords(ordersFilename, "orders", ordersHeader)
	if err != nil {
		return nil, err
	}

	var orders []*entities.Order
	byID := make(map[string]*entities.Order, len(records))
	for i, record := range records {
		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		if _, exists := byID[order.ID]; exists {
			return nil, fmt.Errorf("orders CSV row %d: duplicate order id %s", i+2, order.ID)
		}
		byID[order.ID] = order
		orders = append(orders, order)
	}

	lineRecords, err := readRecords(linesFilename, "order lines", orderLinesHeader)
	if err != nil {
		return nil, err
	}
	for i, record := range lineRecords {
		orderID := strings.TrimSpace(record[0])
		order, exists := byID[orderID]
		if !exists {
			return nil, fmt.Errorf("order lines CSV row %d: unknown order id %s", i+2, orderID)
		}
		line, err := parseOrderLine(record)
		if err != nil {
			return nil, fmt.Errorf("order lines CSV row %d: %w", i+2, err)
		}
		order.Lines = append(order.Lines, *line)
	}

	return orders, nil
}

// readRecords opens a CSV file, validates its header and returns the data rows.
// A header-only file yields no rows.
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	price, err := parseDecimal("price", record[3])
	if err != nil {
		return nil, err
	}

	stock, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid stock: %w", err)
	}

	return entities.NewProduct(strings.TrimSpace(record[0]), strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), price, stock)
}

func parseOrder(record []string) (*entities.Order, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}

	var pickupTime time.Time
	if raw := strings.TrimSpace(record[4]); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid pickup_time: %w", err)
		}
		pickupTime = parsed
	}

	subtotal, err := parseDecimal("subtotal", record[6])
	if err != nil {
		return nil, err
	}
	tax, err := parseDecimal("tax", record[7])
	if err != nil {
		return nil, err
	}
	total, err := parseDecimal("total", record[8])
	if err != nil {
		return nil, err
	}

	status, err := entities.ParseOrderStatus(record[9])
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[10]))
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	return &entities.Order{
		ID:                 id,
		UserID:             strings.TrimSpace(record[1]),
		CustomerName:       strings.TrimSpace(record[2]),
		CustomerEmail:      strings.TrimSpace(record[3]),
		PickupTime:         pickupTime,
		PickupInstructions: strings.TrimSpace(record[5]),
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              total,
		Status:             status,
		CreatedAt:          createdAt,
	}, nil
}

func parseOrderLine(record []string) (*entities.CartLine, error) {
	price, err := parseDecimal("price", record[3])
	if err != nil {
		return nil, err
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %w", err)
	}

	return entities.NewCartLine(strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), price, quantity)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return value, nil
}
