package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// CartItem is a requested cart entry. Price and name come from the catalog.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// QuoteResult prices a cart without placing an order
type QuoteResult struct {
	Lines    []entities.CartLine `json:"lines"`
	Totals   entities.Totals     `json:"totals"`
	TaxRate  decimal.Decimal     `json:"taxRate"`
	ItemCap  int                 `json:"itemCap"`
	OverCap  bool                `json:"overCap"`
	Adjusted []string            `json:"adjusted,omitempty"`
}

// PlaceOrderRequest is a checkout submission
type PlaceOrderRequest struct {
	UserID             string     `json:"userId"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	PickupTime         string     `json:"pickupTime"`
	PickupInstructions string     `json:"pickupInstructions"`
	Items              []CartItem `json:"items"`
}

// SlotsResult lists today's bookable pickup slots
type SlotsResult struct {
	Date   string                `json:"date"`
	Hours  string                `json:"hours"`
	Closed bool                  `json:"closed"`
	Slots  []entities.PickupSlot `json:"slots"`
}

// OrderView is an order as returned to API clients
type OrderView struct {
	ID string `json:"id"`
	entities.OrderDocument
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	TotalItems int             `json:"totalItems"`
}

// NewOrderView builds the API form of an order
func NewOrderView(order *entities.Order) OrderView {
	return OrderView{
		ID:            order.ID,
		OrderDocument: order.Document(),
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		TotalItems:    order.TotalItems(),
	}
}

// FormatDate renders a calendar day the way reports and slot listings do
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateLayout is the calendar-day layout used in reports and query parameters
const DateLayout = "2006-01-02"
