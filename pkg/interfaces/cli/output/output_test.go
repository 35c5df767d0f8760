package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

func salesRecord() *entities.ReportRecord {
	return &entities.ReportRecord{
		Type: entities.SalesReport,
		Summary: []entities.SummaryField{
			{Key: "totalOrders", Value: decimal.NewFromInt(2)},
			{Key: "totalRevenue", Value: decimal.RequireFromString("30")},
			{Key: "averageOrderValue", Value: decimal.RequireFromString("15")},
		},
		Headers: []string{"Order ID", "Date", "Customer", "Total", "Status"},
		Rows: [][]string{
			{"o1", "2025-06-01", "A", "$10.00", "Processing"},
			{"o2", "2025-06-02", "Unknown, Jr.", "$20.00", "Delivered"},
		},
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "text", salesRecord()))

	out := buf.String()
	assert.Contains(t, out, "Sales Report")
	assert.Contains(t, out, "Total Orders: 2")
	assert.Contains(t, out, "Average Order Value: $15.00")
	assert.Contains(t, out, "Order ID  Date")
	assert.Contains(t, out, "Unknown, Jr.")
}

func TestWriteReport_TextEmpty(t *testing.T) {
	record := salesRecord()
	record.Rows = [][]string{}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "text", record))
	assert.Contains(t, buf.String(), "No data for the selected period.")
}

func TestWriteReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "csv", salesRecord()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Order ID", records[0][0])
	assert.Equal(t, "Unknown, Jr.", records[2][2])
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "json", salesRecord()))
	assert.Contains(t, buf.String(), `"type": "sales"`)
	assert.Contains(t, buf.String(), `"key": "totalRevenue"`)
}

func TestWriteReport_HTML(t *testing.T) {
	record := salesRecord()
	record.Rows[0][2] = "<script>"

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "html", record))

	out := buf.String()
	assert.Contains(t, out, "<title>Sales Report</title>")
	assert.Contains(t, out, "<dt>Total Revenue</dt><dd>$30.00</dd>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<td><script>")
}

func TestWriteReport_UnsupportedFormat(t *testing.T) {
	err := WriteReport(&bytes.Buffer{}, "pdf", salesRecord())
	assert.EqualError(t, err, "unsupported output format: pdf")
}

func TestGenerate_ToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Generate(salesRecord(), Config{Format: "csv", OutputDir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "sales_report.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Order ID,Date,Customer,Total,Status\n"))
}

func TestWriteSlots(t *testing.T) {
	result := &dto.SlotsResult{
		Date:  "2025-06-02",
		Hours: "08:00 - 09:00",
		Slots: []entities.PickupSlot{entities.NewPickupSlot(entities.TimeOfDay{Hour: 8, Minute: 15})},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSlots(&buf, "text", result))
	assert.Contains(t, buf.String(), "08:15  8:15 AM")

	buf.Reset()
	result.Closed, result.Slots = true, nil
	require.NoError(t, WriteSlots(&buf, "text", result))
	assert.Contains(t, buf.String(), "No pickup times are available today.")
}

func TestWriteAnalytics(t *testing.T) {
	result := &dto.AnalyticsResult{
		TotalOrders:  2,
		TotalRevenue: decimal.RequireFromString("30"),
		RevenueByDate: []dto.DateRevenue{
			{Date: "2025-06-01", Revenue: decimal.RequireFromString("10")},
			{Date: "2025-06-02", Revenue: decimal.RequireFromString("20")},
		},
		TopSellingProducts: []dto.ProductSales{{Name: "Rye", Quantity: 3, Amount: decimal.RequireFromString("75")}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAnalytics(&buf, "text", result))
	assert.Contains(t, buf.String(), "Total Revenue: $30.00")
	assert.Contains(t, buf.String(), "1. Rye - 3 units - $75.00")

	buf.Reset()
	require.NoError(t, WriteAnalytics(&buf, "svg", result))
	svg := buf.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 2, strings.Count(svg, `class="bar"`))
	assert.Contains(t, svg, "2025-06-02: $20.00")
}

func TestRevenueChart_Empty(t *testing.T) {
	svg := NewRevenueChart(nil).GenerateSVG(nil)
	assert.Contains(t, svg, "No revenue for the selected period")
}
