package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// DateRevenue is revenue for one calendar day
type DateRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status entities.OrderStatus `json:"status"`
	Count  int                  `json:"count"`
}

// CategoryRevenue is catalog-priced revenue for one product category
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ProductSales is a top seller entry
type ProductSales struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// AnalyticsResult backs the admin analytics dashboard
type AnalyticsResult struct {
	TotalOrders           int               `json:"totalOrders"`
	TotalRevenue          decimal.Decimal   `json:"totalRevenue"`
	CustomerLifetimeValue decimal.Decimal   `json:"customerLifetimeValue"`
	RevenueByDate         []DateRevenue     `json:"revenueByDate"`
	StatusCounts          []StatusCount     `json:"statusCounts"`
	RevenueByCategory     []CategoryRevenue `json:"revenueByCategory"`
	TopSellingProducts    []ProductSales    `json:"topSellingProducts"`
}
