package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultItemCap is the largest online order accepted before the store
// requires the purchase to be made in person
const DefaultItemCap = 7

// StoreSettings are the admin-managed settings the checkout depends on
type StoreSettings struct {
	StoreName     string
	ContactEmail  string
	BusinessHours BusinessHours
	DefaultTax    decimal.Decimal
	ItemCap       int
}

// Validate checks tax rate and item cap bounds
func (s *StoreSettings) Validate() error {
	if s.DefaultTax.IsNegative() || s.DefaultTax.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("default tax must be between 0 and 1, got %s", s.DefaultTax)
	}
	if s.ItemCap < 1 {
		return fmt.Errorf("item cap must be positive, got %d", s.ItemCap)
	}
	return nil
}
