package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry
type Product struct {
	ID       string
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
}

// NewProduct creates a validated Product
func NewProduct(id, name, category string, price decimal.Decimal, stock int) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative, got %d", stock)
	}

	return &Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}, nil
}

// ProductIndex maps product ids to products
type ProductIndex map[string]*Product

// NewProductIndex indexes products by id. Later duplicates win.
func NewProductIndex(products []*Product) ProductIndex {
	index := make(ProductIndex, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}
