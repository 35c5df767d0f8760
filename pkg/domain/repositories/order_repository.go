package repositories

import (
	"context"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// OrderRepository provides access to submitted orders
type OrderRepository interface {
	// CreateOrder persists a new order and returns its assigned id
	CreateOrder(ctx context.Context, order *entities.Order) (string, error)
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
	GetAllOrders(ctx context.Context) ([]*entities.Order, error)
	// UpdateStatus moves an order to a new status, enforcing transition rules
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.Order, error)
}
