package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one product in a shopper's cart. Owned by the cart holder.
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// NewCartLine creates a validated CartLine
func NewCartLine(productID, name string, unitPrice decimal.Decimal, quantity int) (*CartLine, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	return &CartLine{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}, nil
}

// Amount returns unit price times quantity
func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ClampQuantity keeps a requested cart quantity within [1, stock].
// A stock of zero or less leaves the quantity at 1.
func ClampQuantity(requested, stock int) int {
	if stock > 0 && requested > stock {
		return stock
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// TotalItems sums quantities across lines
func TotalItems(lines []CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
