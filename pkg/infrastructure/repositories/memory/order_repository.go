package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	mu        sync.RWMutex
	orders    []entities.Order
	ordersMap map[string]int
	newID     func() string
}

// NewOrderRepository creates a new in-memory order repository that assigns uuid ids
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:    []entities.Order{},
		ordersMap: make(map[string]int),
		newID:     uuid.NewString,
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads historical orders, keeping their ids
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range orders {
		if order.ID == "" {
			return fmt.Errorf("order id cannot be empty when loading orders")
		}
		if err := r.insert(*order); err != nil {
			return err
		}
	}
	return nil
}

// CreateOrder stores a new order under a freshly generated id
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entities.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *order
	stored.ID = r.newID()
	if err := r.insert(stored); err != nil {
		return "", err
	}
	return stored.ID, nil
}

// GetOrder returns a copy of the order with the given id
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.ordersMap[orderID]
	if !exists {
		return nil, fmt.Errorf("order %s: %w", orderID, repositories.ErrNotFound)
	}
	order := cloneOrder(r.orders[index])
	return &order, nil
}

// GetAllOrders returns copies of all orders in insertion order
func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*entities.Order, 0, len(r.orders))
	for i := range r.orders {
		order := cloneOrder(r.orders[i])
		orders = append(orders, &order)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status if the transition is allowed
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.ordersMap[orderID]
	if !exists {
		return nil, fmt.Errorf("order %s: %w", orderID, repositories.ErrNotFound)
	}
	updated, err := r.orders[index].WithStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}
	r.orders[index] = updated
	order := cloneOrder(updated)
	return &order, nil
}

func (r *OrderRepository) insert(order entities.Order) error {
	if _, exists := r.ordersMap[order.ID]; exists {
		return fmt.Errorf("duplicate order id: %s", order.ID)
	}
	r.ordersMap[order.ID] = len(r.orders)
	r.orders = append(r.orders, cloneOrder(order))
	return nil
}

func cloneOrder(o entities.Order) entities.Order {
	o.Lines = append([]entities.CartLine(nil), o.Lines...)
	return o
}
