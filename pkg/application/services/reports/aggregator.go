package reports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// ErrUnknownReportType is returned for a report variant the aggregator does not build
var ErrUnknownReportType = errors.New("unknown report type")

// Report column headers
var (
	SalesHeaders     = []string{"Order ID", "Date", "Customer", "Total", "Status"}
	ProductsHeaders  = []string{"Product", "Category", "Units Sold", "Revenue"}
	CustomersHeaders = []string{"Customer", "Email", "Total Orders", "Total Spent", "Avg Order"}
)

// Placeholders for missing profile fields
const (
	UnknownCustomer = "Unknown"
	MissingEmail    = "N/A"
)

// Snapshot is the data a report is computed from. It is read, never modified.
type Snapshot struct {
	Orders   []*entities.Order
	Products []*entities.Product
	Users    []*entities.User
}

// Aggregator builds reports from snapshots. The zero value renders dates in each
// order's own location.
type Aggregator struct {
	// Location, when set, is the timezone order dates are rendered in
	Location *time.Location
}

// NewAggregator creates an aggregator rendering dates in loc
func NewAggregator(loc *time.Location) *Aggregator {
	return &Aggregator{Location: loc}
}

// Generate filters the snapshot's orders once and builds the requested report
func (a *Aggregator) Generate(reportType entities.ReportType, snapshot Snapshot, dateRange entities.DateRange) (*entities.ReportRecord, error) {
	filtered := FilterByDateRange(snapshot.Orders, dateRange)

	switch reportType {
	case entities.SalesReport:
		return a.GenerateSalesReport(filtered, entities.NewUserIndex(snapshot.Users)), nil
	case entities.ProductsReport:
		return a.GenerateProductsReport(filtered, entities.NewProductIndex(snapshot.Products)), nil
	case entities.CustomersReport:
		return a.GenerateCustomersReport(filtered, snapshot.Users), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownReportType, int(reportType))
	}
}

// FilterByDateRange keeps orders created within the range, both ends inclusive.
// A range missing either end keeps every order. The input slice is not modified.
func FilterByDateRange(orders []*entities.Order, dateRange entities.DateRange) []*entities.Order {
	filtered := make([]*entities.Order, 0, len(orders))
	for _, order := range orders {
		if dateRange.Contains(order.CreatedAt) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// GenerateSalesReport lists one row per order. Orders whose user is missing or
// has no name are attributed to "Unknown".
func (a *Aggregator) GenerateSalesReport(orders []*entities.Order, users entities.UserIndex) *entities.ReportRecord {
	totalRevenue := decimal.Zero
	rows := make([][]string, 0, len(orders))

	for _, order := range orders {
		totalRevenue = totalRevenue.Add(order.Total)

		customer := UnknownCustomer
		if user, ok := users[order.UserID]; ok && user.Name != "" {
			customer = user.Name
		}

		rows = append(rows, []string{
			order.ID,
			a.formatDate(order.CreatedAt),
			customer,
			FormatCurrency(order.Total),
			order.Status.String(),
		})
	}

	return &entities.ReportRecord{
		Type: entities.SalesReport,
		Summary: []entities.SummaryField{
			{Key: "totalOrders", Value: decimal.NewFromInt(int64(len(orders)))},
			{Key: "totalRevenue", Value: totalRevenue},
			{Key: "averageOrderValue", Value: average(totalRevenue, len(orders))},
		},
		Headers: append([]string(nil), SalesHeaders...),
		Rows:    rows,
	}
}

type productStats struct {
	product  *entities.Product
	quantity int
	revenue  decimal.Decimal
}

// GenerateProductsReport totals units and catalog-priced revenue per product.
// Lines for products missing from the catalog are skipped. Rows are ordered by
// revenue, highest first, keeping first-seen order on ties.
func (a *Aggregator) GenerateProductsReport(orders []*entities.Order, products entities.ProductIndex) *entities.ReportRecord {
	var stats []*productStats
	byID := make(map[string]*productStats)

	for _, order := range orders {
		for _, line := range order.Lines {
			product, ok := products[line.ProductID]
			if !ok {
				continue
			}
			s, seen := byID[product.ID]
			if !seen {
				s = &productStats{product: product, revenue: decimal.Zero}
				byID[product.ID] = s
				stats = append(stats, s)
			}
			s.quantity += line.Quantity
			s.revenue = s.revenue.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].revenue.GreaterThan(stats[j].revenue)
	})

	totalUnits := 0
	totalRevenue := decimal.Zero
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		totalUnits += s.quantity
		totalRevenue = totalRevenue.Add(s.revenue)
		rows = append(rows, []string{
			s.product.Name,
			s.product.Category,
			strconv.Itoa(s.quantity),
			FormatCurrency(s.revenue),
		})
	}

	return &entities.ReportRecord{
		Type: entities.ProductsReport,
		Summary: []entities.SummaryField{
			{Key: "totalProducts", Value: decimal.NewFromInt(int64(len(stats)))},
			{Key: "totalUnitsSold", Value: decimal.NewFromInt(int64(totalUnits))},
			{Key: "totalRevenue", Value: totalRevenue},
		},
		Headers: append([]string(nil), ProductsHeaders...),
		Rows:    rows,
	}
}

type customerStats struct {
	user       *entities.User
	orderCount int
	totalSpent decimal.Decimal
}

// GenerateCustomersReport summarizes spend per user. Users without orders in
// the window are left out. Rows are ordered by total spent, highest first,
// keeping user order on ties.
func (a *Aggregator) GenerateCustomersReport(orders []*entities.Order, users []*entities.User) *entities.ReportRecord {
	type tally struct {
		count int
		total decimal.Decimal
	}
	byUser := make(map[string]*tally)
	for _, order := range orders {
		t, ok := byUser[order.UserID]
		if !ok {
			t = &tally{total: decimal.Zero}
			byUser[order.UserID] = t
		}
		t.count++
		t.total = t.total.Add(order.Total)
	}

	stats := make([]customerStats, 0, len(users))
	for _, user := range users {
		t, ok := byUser[user.ID]
		if !ok || t.count == 0 {
			continue
		}
		stats = append(stats, customerStats{user: user, orderCount: t.count, totalSpent: t.total})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].totalSpent.GreaterThan(stats[j].totalSpent)
	})

	totalRevenue := decimal.Zero
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		totalRevenue = totalRevenue.Add(s.totalSpent)

		name := s.user.Name
		if name == "" {
			name = UnknownCustomer
		}
		email := s.user.Email
		if email == "" {
			email = MissingEmail
		}

		rows = append(rows, []string{
			name,
			email,
			strconv.Itoa(s.orderCount),
			FormatCurrency(s.totalSpent),
			FormatCurrency(average(s.totalSpent, s.orderCount)),
		})
	}

	return &entities.ReportRecord{
		Type: entities.CustomersReport,
		Summary: []entities.SummaryField{
			{Key: "totalCustomers", Value: decimal.NewFromInt(int64(len(stats)))},
			{Key: "totalRevenue", Value: totalRevenue},
			{Key: "avgCustomerValue", Value: average(totalRevenue, len(stats))},
		},
		Headers: append([]string(nil), CustomersHeaders...),
		Rows:    rows,
	}
}

func (a *Aggregator) formatDate(t time.Time) string {
	if a != nil && a.Location != nil {
		t = t.In(a.Location)
	}
	return dto.FormatDate(t)
}

// average divides total by count, yielding zero when count is zero
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
