package repositories

import (
	"context"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	GetProduct(ctx context.Context, productID string) (*entities.Product, error)
	GetAllProducts(ctx context.Context) ([]*entities.Product, error)
}
