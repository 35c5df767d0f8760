package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// CurrencyPlaces is the number of decimal places money is rounded to
const CurrencyPlaces = 2

// RoundHalfUp rounds a non-negative amount to places, halves going up.
// decimal.Round rounds half away from zero, which is half-up for amounts >= 0.
func RoundHalfUp(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// ComputeTotals prices a cart. An empty cart yields all-zero totals.
func ComputeTotals(lines []entities.CartLine, taxRate decimal.Decimal) entities.Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}
	tax := RoundHalfUp(subtotal.Mul(taxRate), CurrencyPlaces)

	return entities.Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
		TotalItems: entities.TotalItems(lines),
	}
}

// OrderRequest gathers everything needed to build an order
type OrderRequest struct {
	Customer           entities.Customer
	Lines              []entities.CartLine
	PickupSlot         string
	PickupInstructions string
	ValidSlots         []entities.PickupSlot
	ItemCap            int
	TaxRate            decimal.Decimal
	Now                time.Time
}

// BuildOrder validates a checkout submission and assembles the order.
// Checks run in a fixed order and the first failure is returned:
// customer info, pickup slot, empty cart, item cap.
func BuildOrder(req OrderRequest) (*entities.Order, error) {
	name := strings.TrimSpace(req.Customer.Name)
	email := strings.TrimSpace(req.Customer.Email)
	if name == "" || email == "" {
		return nil, newValidationError(ErrMissingCustomerInfo, "Please fill in all required fields")
	}

	if req.PickupSlot == "" || !IsValidSlot(req.PickupSlot, req.ValidSlots) {
		return nil, newValidationError(ErrInvalidPickupSlot, "Invalid pickup time")
	}
	pickupAt, err := entities.ParseTimeOfDay(req.PickupSlot)
	if err != nil {
		return nil, newValidationError(ErrInvalidPickupSlot, "Invalid pickup time")
	}

	if len(req.Lines) == 0 {
		return nil, newValidationError(ErrEmptyCart, "Cart is empty")
	}

	totals := ComputeTotals(req.Lines, req.TaxRate)
	if totals.TotalItems > req.ItemCap {
		return nil, newValidationErrorf(ErrItemCapExceeded,
			"Orders over %d items must be placed in-store", req.ItemCap)
	}

	return &entities.Order{
		UserID:             req.Customer.UserID,
		CustomerName:       name,
		CustomerEmail:      email,
		PickupTime:         pickupAt.On(req.Now),
		PickupInstructions: strings.TrimSpace(req.PickupInstructions),
		Lines:              append([]entities.CartLine(nil), req.Lines...),
		Subtotal:           totals.Subtotal,
		Tax:                totals.Tax,
		Total:              totals.Total,
		Status:             entities.Processing,
		CreatedAt:          req.Now,
	}, nil
}
