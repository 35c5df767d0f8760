package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
	testhelpers "github.com/vsinha/liquorstore/pkg/infrastructure/testing"
)

func newFixtureService() *Service {
	data := testhelpers.BuildStorefrontTestData()
	return NewService(data.Orders, data.Products, data.Users, NewAggregator(time.UTC), nil)
}

func TestService_Generate_Sales(t *testing.T) {
	record, err := newFixtureService().Generate(context.Background(), entities.SalesReport, entities.DateRange{})
	require.NoError(t, err)

	require.Len(t, record.Rows, 3)
	assert.Equal(t, []string{"o1", "2025-06-01", "Ada Lovelace", "$48.05", "Delivered"}, record.Rows[0])
	assert.Equal(t, "Unknown", record.Rows[1][2])
	assert.Equal(t, "$119.33", FormatSummaryValue("totalRevenue", summary(t, record, "totalRevenue")))
	assert.Equal(t, "$39.78", FormatSummaryValue("averageOrderValue", summary(t, record, "averageOrderValue")))
}

func TestService_Generate_ProductsWithRange(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 23, 59, 59, 0, time.UTC)

	record, err := newFixtureService().Generate(context.Background(), entities.ProductsReport,
		entities.DateRange{Start: &start, End: &end})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"London Dry Gin", "Gin", "2", "$39.00"},
		{"IPA Six Pack", "Beer", "2", "$22.00"},
	}, record.Rows)
}

func TestService_Generate_Customers(t *testing.T) {
	record, err := newFixtureService().Generate(context.Background(), entities.CustomersReport, entities.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Ada Lovelace", "ada@example.com", "2", "$95.57", "$47.79"},
		{"Unknown", "N/A", "1", "$23.76", "$23.76"},
	}, record.Rows)
}

func TestService_Analytics(t *testing.T) {
	result, err := newFixtureService().Analytics(context.Background(), entities.DateRange{}, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalOrders)
	assert.True(t, dec("119.33").Equal(result.TotalRevenue))
	assert.Len(t, result.RevenueByDate, 3)
	assert.Equal(t, "Gin", result.RevenueByCategory[0].Category)
	require.Len(t, result.TopSellingProducts, 2)
	assert.Equal(t, "gin", result.TopSellingProducts[0].ProductID)
	assert.Equal(t, 3, result.TopSellingProducts[0].Quantity)
}

type failingOrders struct {
	repositories.OrderRepository
}

func (failingOrders) GetAllOrders(context.Context) ([]*entities.Order, error) {
	return nil, errors.New("store offline")
}

func TestService_Generate_StoreFailure(t *testing.T) {
	data := testhelpers.BuildStorefrontTestData()
	svc := NewService(failingOrders{}, data.Products, data.Users, nil, nil)

	_, err := svc.Generate(context.Background(), entities.SalesReport, entities.DateRange{})
	assert.ErrorContains(t, err, "failed to load orders: store offline")
}
