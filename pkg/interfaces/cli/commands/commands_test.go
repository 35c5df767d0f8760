package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/services"
	"github.com/vsinha/liquorstore/pkg/infrastructure/clock"
	"github.com/vsinha/liquorstore/pkg/infrastructure/repositories/csv"
)

const (
	scenarioDir = "testdata/scenario"
	storeConfig = "testdata/store.yaml"
)

func baseConfig(out *bytes.Buffer) Config {
	return Config{DataDir: scenarioDir, ConfigFile: storeConfig, Out: out}
}

func TestReportCommand_Products(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.ReportType = "products"
	cfg.Format = "csv"

	require.NoError(t, NewReportCommand(cfg).Execute(context.Background()))

	assert.Equal(t, "Product,Category,Units Sold,Revenue\n"+
		"London Dry Gin,Gin,3,$58.50\n"+
		"Rye Whiskey,Whiskey,1,$24.99\n"+
		"IPA Six Pack,Beer,2,$22.00\n", out.String())
}

func TestReportCommand_SalesDateRange(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Format = "csv"
	cfg.StartDate = "2025-06-02"
	cfg.EndDate = "2025-06-02"

	require.NoError(t, NewReportCommand(cfg).Execute(context.Background()))

	assert.Equal(t, "Order ID,Date,Customer,Total,Status\n"+
		"o2,2025-06-02,Unknown,$23.76,Processing\n", out.String())
}

func TestReportCommand_CustomersText(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.ReportType = "customers"

	require.NoError(t, NewReportCommand(cfg).Execute(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Customers Report")
	assert.Contains(t, text, "Total Customers: 2")
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "$95.57")
	assert.Contains(t, text, "N/A")
	assert.NotContains(t, text, "Grace Hopper")
}

func TestReportCommand_OutputDir(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Format = "json"
	cfg.OutputDir = filepath.Join(t.TempDir(), "reports")

	require.NoError(t, NewReportCommand(cfg).Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "sales_report.json"))
	require.NoError(t, err)

	var record struct {
		Type string     `json:"type"`
		Rows [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "sales", record.Type)
	assert.Len(t, record.Rows, 3)
}

func TestReportCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing data dir", func(c *Config) { c.DataDir = "" }, "must specify -data"},
		{"bad format", func(c *Config) { c.Format = "pdf" }, "unsupported output format: pdf"},
		{"bad type", func(c *Config) { c.ReportType = "inventory" }, "invalid report type"},
		{"bad range", func(c *Config) { c.StartDate, c.EndDate = "2025-06-03", "2025-06-01" }, "end date cannot be before start date"},
		{"missing scenario", func(c *Config) { c.DataDir = "testdata/nope" }, "error loading scenario"},
		{"missing config", func(c *Config) { c.ConfigFile = "testdata/nope.yaml" }, "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg := baseConfig(&out)
			tt.mutate(&cfg)
			err := NewReportCommand(cfg).Execute(context.Background())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReportCommand_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewReportCommand(Config{Help: true, Out: &out}).Execute(context.Background()))
	assert.Contains(t, out.String(), "storefront report -data <directory>")
}

func TestSlotsCommand(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		ConfigFile: storeConfig,
		Clock:      clock.NewFixed(time.Date(2025, 6, 2, 21, 5, 0, 0, time.UTC)),
		Out:        &out,
	}

	require.NoError(t, NewSlotsCommand(cfg).Execute(context.Background()))

	assert.Equal(t, "🕒 Pickup slots for 2025-06-02 (hours 08:00 - 22:00)\n"+
		"  21:15  9:15 PM\n"+
		"  21:45  9:45 PM\n", out.String())
}

func TestSlotsCommand_AfterClose(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		ConfigFile: storeConfig,
		Format:     "json",
		Clock:      clock.NewFixed(time.Date(2025, 6, 2, 22, 30, 0, 0, time.UTC)),
		Out:        &out,
	}

	require.NoError(t, NewSlotsCommand(cfg).Execute(context.Background()))

	var result dto.SlotsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Closed)
	assert.Empty(t, result.Slots)
}

func TestAnalyticsCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Format = "json"
	cfg.TopN = 2

	require.NoError(t, NewAnalyticsCommand(cfg).Execute(context.Background()))

	var result dto.AnalyticsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 3, result.TotalOrders)
	assert.True(t, decimal.RequireFromString("119.33").Equal(result.TotalRevenue), result.TotalRevenue.String())
	require.Len(t, result.TopSellingProducts, 2)
	assert.Equal(t, "gin", result.TopSellingProducts[0].ProductID)
	assert.Equal(t, 3, result.TopSellingProducts[0].Quantity)
	assert.Equal(t, "ipa", result.TopSellingProducts[1].ProductID)
	require.Len(t, result.RevenueByDate, 3)
	assert.Equal(t, "2025-06-01", result.RevenueByDate[0].Date)
}

func TestAnalyticsCommand_SVGFile(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Format = "svg"
	cfg.OutputDir = t.TempDir()

	require.NoError(t, NewAnalyticsCommand(cfg).Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "analytics.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestAnalyticsCommand_Validation(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Format = "csv"
	assert.ErrorContains(t, NewAnalyticsCommand(cfg).Execute(context.Background()), "unsupported output format: csv")

	cfg = baseConfig(&out)
	cfg.TopN = -1
	assert.ErrorContains(t, NewAnalyticsCommand(cfg).Execute(context.Background()), "-top must be non-negative")
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	cfg := baseConfig(&out)
	cfg.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, NewServeCommand(cfg).Execute(ctx))
}

func TestOpenStorefront_LinksOrderHistory(t *testing.T) {
	sf, err := openStorefront(Config{DataDir: scenarioDir, ConfigFile: storeConfig}, false)
	require.NoError(t, err)

	ada, err := sf.users.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o3"}, ada.OrderHistory)

	grace, err := sf.users.GetUser(context.Background(), "u3")
	require.NoError(t, err)
	assert.Empty(t, grace.OrderHistory)
}

func TestGenerateCommand(t *testing.T) {
	generate := func(dir string) {
		cmd := NewGenerateCommand(GenerateConfig{
			Products:   5,
			Users:      3,
			Orders:     10,
			Days:       7,
			Until:      "2025-06-30",
			OutputDir:  dir,
			ConfigFile: storeConfig,
			Seed:       42,
		})
		require.NoError(t, cmd.Execute(context.Background()))
	}

	first := filepath.Join(t.TempDir(), "a")
	second := filepath.Join(t.TempDir(), "b")
	generate(first)
	generate(second)

	scenario, err := csv.NewLoader().LoadScenario(first)
	require.NoError(t, err)
	assert.Len(t, scenario.Products, 5)
	assert.Len(t, scenario.Users, 3)
	require.Len(t, scenario.Orders, 10)

	tax := decimal.RequireFromString("0.08")
	for _, order := range scenario.Orders {
		assert.LessOrEqual(t, order.TotalItems(), entities.DefaultItemCap)
		assert.True(t, services.ComputeTotals(order.Lines, tax).Total.Equal(order.Total), order.ID)
		assert.False(t, order.CreatedAt.After(time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)))
	}

	for _, name := range []string{csv.ProductsFile, csv.UsersFile, csv.OrdersFile, csv.OrderLinesFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "same seed should reproduce %s", name)
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	err := NewGenerateCommand(GenerateConfig{Products: 1, Users: 1}).Execute(context.Background())
	assert.ErrorContains(t, err, "must specify -output directory")
}
