package reports

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
)

// Service fetches a snapshot from the stores and runs the aggregator over it
type Service struct {
	orders     repositories.OrderRepository
	products   repositories.ProductRepository
	users      repositories.UserRepository
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewService creates a report service. A nil logger disables logging.
func NewService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	users repositories.UserRepository,
	aggregator *Aggregator,
	logger *zap.Logger,
) *Service {
	if aggregator == nil {
		aggregator = &Aggregator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:     orders,
		products:   products,
		users:      users,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Snapshot loads every order, product and user
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	orders, err := s.orders.GetAllOrders(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load orders: %w", err)
	}
	products, err := s.products.GetAllProducts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load products: %w", err)
	}
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load users: %w", err)
	}
	return Snapshot{Orders: orders, Products: products, Users: users}, nil
}

// Generate builds one report over a fresh snapshot
func (s *Service) Generate(ctx context.Context, reportType entities.ReportType, dateRange entities.DateRange) (*entities.ReportRecord, error) {
	start := time.Now()

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.aggregator.Generate(reportType, snapshot, dateRange)
	if err != nil {
		return nil, err
	}

	s.logger.Info("report generated",
		zap.Stringer("type", reportType),
		zap.Int("orders", len(snapshot.Orders)),
		zap.Int("rows", len(record.Rows)),
		zap.Bool("filtered", dateRange.IsSet()),
		zap.Duration("elapsed", time.Since(start)))

	return record, nil
}

// Analytics builds the dashboard figures over a fresh snapshot
func (s *Service) Analytics(ctx context.Context, dateRange entities.DateRange, topLimit int) (*dto.AnalyticsResult, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Analytics(snapshot, dateRange, topLimit), nil
}
