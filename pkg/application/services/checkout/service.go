package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
	"github.com/vsinha/liquorstore/pkg/domain/services"
	"github.com/vsinha/liquorstore/pkg/infrastructure/clock"
	"github.com/vsinha/liquorstore/pkg/infrastructure/events"
)

var (
	// ErrUnknownProduct is returned when a cart references a product missing from the catalog
	ErrUnknownProduct = errors.New("unknown product")
	// ErrInvalidQuantity is returned for a cart quantity below one
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Dependencies are the collaborators a checkout service needs. Events and
// Logger are optional.
type Dependencies struct {
	Settings repositories.SettingsRepository
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository
	Users    repositories.UserRepository
	Planner  *services.PickupSlotPlanner
	Clock    clock.Clock
	Events   events.EventStore
	Logger   *zap.Logger
}

// Service runs checkout: it fetches store state, hands an immutable snapshot
// to the slot planner and order pricer, then persists the result.
type Service struct {
	settings repositories.SettingsRepository
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	users    repositories.UserRepository
	planner  *services.PickupSlotPlanner
	clock    clock.Clock
	events   events.EventStore
	logger   *zap.Logger
}

// NewService creates a checkout service
func NewService(deps Dependencies) (*Service, error) {
	if deps.Settings == nil || deps.Products == nil || deps.Orders == nil || deps.Users == nil {
		return nil, fmt.Errorf("checkout service requires settings, products, orders and users repositories")
	}
	if deps.Planner == nil {
		deps.Planner = services.NewPickupSlotPlanner()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem(nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Service{
		settings: deps.Settings,
		products: deps.Products,
		orders:   deps.Orders,
		users:    deps.Users,
		planner:  deps.Planner,
		clock:    deps.Clock,
		events:   deps.Events,
		logger:   deps.Logger,
	}, nil
}

// PickupSlots lists the slots still bookable today
func (s *Service) PickupSlots(ctx context.Context) (*dto.SlotsResult, error) {
	settings, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}

	now := s.clock.Now()
	slots := s.planner.GenerateSlots(settings.BusinessHours, now)
	return &dto.SlotsResult{
		Date:   dto.FormatDate(now),
		Hours:  settings.BusinessHours.String(),
		Closed: len(slots) == 0,
		Slots:  slots,
	}, nil
}

// Quote prices a cart at catalog prices without placing an order
func (s *Service) Quote(ctx context.Context, items []dto.CartItem) (*dto.QuoteResult, error) {
	settings, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}

	lines, adjusted, err := s.resolveLines(ctx, items)
	if err != nil {
		return nil, err
	}

	totals := services.ComputeTotals(lines, settings.DefaultTax)
	return &dto.QuoteResult{
		Lines:    lines,
		Totals:   totals,
		TaxRate:  settings.DefaultTax,
		ItemCap:  settings.ItemCap,
		OverCap:  totals.TotalItems > settings.ItemCap,
		Adjusted: adjusted,
	}, nil
}

// PlaceOrder validates and persists a checkout submission. Validation failures
// are returned as *services.ValidationError. After the order is stored its id is
// appended to the customer's history and an order.placed event is recorded;
// failures in those follow-ups are logged and do not undo the order.
func (s *Service) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*entities.Order, error) {
	settings, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}

	lines, _, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order, err := services.BuildOrder(services.OrderRequest{
		Customer:           entities.Customer{UserID: req.UserID, Name: req.Name, Email: req.Email},
		Lines:              lines,
		PickupSlot:         req.PickupTime,
		PickupInstructions: req.PickupInstructions,
		ValidSlots:         s.planner.GenerateSlots(settings.BusinessHours, now),
		ItemCap:            settings.ItemCap,
		TaxRate:            settings.DefaultTax,
		Now:                now,
	})
	if err != nil {
		s.logger.Info("checkout rejected",
			zap.String("user_id", req.UserID),
			zap.String("pickup_time", req.PickupTime),
			zap.Error(err))
		return nil, err
	}

	orderID, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	order.ID = orderID

	if order.UserID != "" {
		if err := s.users.AppendOrderHistory(ctx, order.UserID, orderID); err != nil {
			s.logger.Warn("failed to append order history",
				zap.String("order_id", orderID),
				zap.String("user_id", order.UserID),
				zap.Error(err))
		}
	}

	s.publish(events.NewOrderPlaced(order))

	s.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("user_id", order.UserID),
		zap.Int("total_items", order.TotalItems()),
		zap.Stringer("total", order.Total),
		zap.Time("pickup_time", order.PickupTime))

	return order, nil
}

// GetOrder returns a stored order
func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

// UpdateOrderStatus moves an order to a new status and records the change
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.Order, error) {
	current, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewOrderStatusChanged(orderID, current.Status, updated.Status, s.clock.Now()))
	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.Stringer("from", current.Status),
		zap.Stringer("to", updated.Status))

	return updated, nil
}

// resolveLines prices requested items from the catalog. Repeated products are
// merged, and quantities above stock are clamped; the ids of clamped products
// are returned as adjusted.
func (s *Service) resolveLines(ctx context.Context, items []dto.CartItem) ([]entities.CartLine, []string, error) {
	lines := make([]entities.CartLine, 0, len(items))
	positions := make(map[string]int, len(items))
	stock := make(map[string]int, len(items))

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, nil, fmt.Errorf("%w: %s has quantity %d", ErrInvalidQuantity, item.ProductID, item.Quantity)
		}
		if i, seen := positions[item.ProductID]; seen {
			lines[i].Quantity += item.Quantity
			continue
		}

		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
			}
			return nil, nil, fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}

		line, err := entities.NewCartLine(product.ID, product.Name, product.Price, item.Quantity)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s: %w", product.ID, err)
		}
		positions[product.ID] = len(lines)
		stock[product.ID] = product.Stock
		lines = append(lines, *line)
	}

	var adjusted []string
	for i := range lines {
		clamped := entities.ClampQuantity(lines[i].Quantity, stock[lines[i].ProductID])
		if clamped != lines[i].Quantity {
			lines[i].Quantity = clamped
			adjusted = append(adjusted, lines[i].ProductID)
		}
	}
	return lines, adjusted, nil
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to record event",
			zap.String("event_type", event.Type()),
			zap.String("stream_id", event.StreamID()),
			zap.Error(err))
	}
}
