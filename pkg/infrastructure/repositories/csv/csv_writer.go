package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// Writer persists storefront snapshots in the layout Loader reads
type Writer struct{}

// NewWriter creates a new CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteScenario writes products, users, orders and order lines into dir,
// creating it if needed
func (w *Writer) WriteScenario(dir string, scenario *Scenario) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	if err := w.WriteProducts(filepath.Join(dir, ProductsFile), scenario.Products); err != nil {
		return err
	}
	if err := w.WriteUsers(filepath.Join(dir, UsersFile), scenario.Users); err != nil {
		return err
	}
	return w.WriteOrders(filepath.Join(dir, OrdersFile), filepath.Join(dir, OrderLinesFile), scenario.Orders)
}

// WriteProducts writes the catalog
func (w *Writer) WriteProducts(filename string, products []*entities.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ID, p.Name, p.Category, p.Price.String(), strconv.Itoa(p.Stock)})
	}
	return writeRecords(filename, "products", productsHeader, rows)
}

// WriteUsers writes customer profiles. Order history is derived from orders on load.
func (w *Writer) WriteUsers(filename string, users []*entities.User) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email})
	}
	return writeRecords(filename, "users", usersHeader, rows)
}

// WriteOrders writes order headers and their lines to separate files
func (w *Writer) WriteOrders(ordersFilename, linesFilename string, orders []*entities.Order) error {
	headers := make([][]string, 0, len(orders))
	var lines [][]string
	for _, o := range orders {
		pickup := ""
		if !o.PickupTime.IsZero() {
			pickup = o.PickupTime.UTC().Format(time.RFC3339)
		}
		headers = append(headers, []string{
			o.ID,
			o.UserID,
			o.CustomerName,
			o.CustomerEmail,
			pickup,
			o.PickupInstructions,
			o.Subtotal.StringFixed(2),
			o.Tax.StringFixed(2),
			o.Total.StringFixed(2),
			o.Status.String(),
			o.CreatedAt.UTC().Format(time.RFC3339),
		})
		for _, line := range o.Lines {
			lines = append(lines, []string{o.ID, line.ProductID, line.Name, line.UnitPrice.String(), strconv.Itoa(line.Quantity)})
		}
	}

	if err := writeRecords(ordersFilename, "orders", ordersHeader, headers); err != nil {
		return err
	}
	return writeRecords(linesFilename, "order lines", orderLinesHeader, lines)
}

func writeRecords(filename, kind string, header []string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", kind, err)
	}
	return file.Close()
}
