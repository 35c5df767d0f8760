package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
	"github.com/vsinha/liquorstore/pkg/domain/repositories"
)

// ProductRepository provides in-memory catalog storage
type ProductRepository struct {
	mu          sync.RWMutex
	products    []entities.Product
	productsMap map[string]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[string]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		if err := r.SaveProduct(product); err != nil {
			return err
		}
	}
	return nil
}

// SaveProduct adds a product, rejecting duplicate ids
func (r *ProductRepository) SaveProduct(product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.productsMap[product.ID]; exists {
		return fmt.Errorf("duplicate product id: %s", product.ID)
	}
	r.productsMap[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}

// GetProduct returns a copy of the product with the given id
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[productID]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, repositories.ErrNotFound)
	}
	product := r.products[index]
	return &product, nil
}

// GetAllProducts returns copies of all products in insertion order
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		product := r.products[i]
		products = append(products, &product)
	}
	return products, nil
}
