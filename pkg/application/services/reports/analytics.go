package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// orderStatuses lists every status in display order
var orderStatuses = []entities.OrderStatus{
	entities.Processing,
	entities.Shipped,
	entities.Delivered,
	entities.Cancelled,
}

// RevenueByDate sums order totals per calendar day, earliest day first
func (a *Aggregator) RevenueByDate(orders []*entities.Order) []dto.DateRevenue {
	byDate := make(map[string]decimal.Decimal)
	for _, order := range orders {
		day := a.formatDate(order.CreatedAt)
		byDate[day] = byDate[day].Add(order.Total)
	}

	result := make([]dto.DateRevenue, 0, len(byDate))
	for day, revenue := range byDate {
		result = append(result, dto.DateRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// StatusCounts counts orders per status. Every status is listed, including empty ones.
func StatusCounts(orders []*entities.Order) []dto.StatusCount {
	counts := make(map[entities.OrderStatus]int, len(orderStatuses))
	for _, order := range orders {
		counts[order.Status]++
	}

	result := make([]dto.StatusCount, 0, len(orderStatuses))
	for _, status := range orderStatuses {
		result = append(result, dto.StatusCount{Status: status, Count: counts[status]})
	}
	return result
}

// RevenueByCategory sums catalog-priced line revenue per product category,
// highest first, ties by category name. Unknown products are skipped.
func RevenueByCategory(orders []*entities.Order, products entities.ProductIndex) []dto.CategoryRevenue {
	byCategory := make(map[string]decimal.Decimal)
	for _, order := range orders {
		for _, line := range order.Lines {
			product, ok := products[line.ProductID]
			if !ok {
				continue
			}
			amount := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			byCategory[product.Category] = byCategory[product.Category].Add(amount)
		}
	}

	result := make([]dto.CategoryRevenue, 0, len(byCategory))
	for category, revenue := range byCategory {
		result = append(result, dto.CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// TopSellingProducts ranks products by units sold, most first, keeping
// first-seen order on ties. A limit of zero or less returns every product.
func TopSellingProducts(orders []*entities.Order, products entities.ProductIndex, limit int) []dto.ProductSales {
	var ranked []*dto.ProductSales
	byID := make(map[string]*dto.ProductSales)

	for _, order := range orders {
		for _, line := range order.Lines {
			product, ok := products[line.ProductID]
			if !ok {
				continue
			}
			entry, seen := byID[product.ID]
			if !seen {
				entry = &dto.ProductSales{ProductID: product.ID, Name: product.Name, Price: product.Price}
				byID[product.ID] = entry
				ranked = append(ranked, entry)
			}
			entry.Quantity += line.Quantity
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]dto.ProductSales, 0, len(ranked))
	for _, entry := range ranked {
		entry.Amount = entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		result = append(result, *entry)
	}
	return result
}

// Analytics builds the dashboard figures. Revenue, status and category figures
// use the date-filtered orders; top sellers always cover every order.
// Lifetime value spreads filtered revenue across all users.
func (a *Aggregator) Analytics(snapshot Snapshot, dateRange entities.DateRange, topLimit int) *dto.AnalyticsResult {
	filtered := FilterByDateRange(snapshot.Orders, dateRange)
	products := entities.NewProductIndex(snapshot.Products)

	totalRevenue := decimal.Zero
	for _, order := range filtered {
		totalRevenue = totalRevenue.Add(order.Total)
	}

	return &dto.AnalyticsResult{
		TotalOrders:           len(filtered),
		TotalRevenue:          totalRevenue,
		CustomerLifetimeValue: average(totalRevenue, len(snapshot.Users)),
		RevenueByDate:         a.RevenueByDate(filtered),
		StatusCounts:          StatusCounts(filtered),
		RevenueByCategory:     RevenueByCategory(filtered, products),
		TopSellingProducts:    TopSellingProducts(snapshot.Orders, products, topLimit),
	}
}
