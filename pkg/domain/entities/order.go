package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTransition is returned when an order status change is not allowed
var ErrInvalidTransition = errors.New("invalid order status transition")

// OrderStatus represents the fulfilment state of an order
type OrderStatus int

const (
	Processing OrderStatus = iota
	Shipped
	Delivered
	Cancelled
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case Processing:
		return "Processing"
	case Shipped:
		return "Shipped"
	case Delivered:
		return "Delivered"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ParseOrderStatus parses a status name case-insensitively.
// "Completed" is accepted as an alias of Delivered.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processing":
		return Processing, nil
	case "shipped":
		return Shipped, nil
	case "delivered", "completed":
		return Delivered, nil
	case "cancelled", "canceled":
		return Cancelled, nil
	default:
		return Processing, fmt.Errorf("invalid order status: %s (expected: Processing, Shipped, Delivered, or Cancelled)", s)
	}
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransition reports whether an order may move from s to next
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case Processing:
		return next == Shipped || next == Delivered || next == Cancelled
	case Shipped:
		return next == Delivered || next == Cancelled
	default:
		return false
	}
}

// MarshalText encodes the status by name
func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *OrderStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Customer identifies who is placing an order
type Customer struct {
	UserID string
	Name   string
	Email  string
}

// Totals holds the priced amounts of a cart
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"totalItems"`
}

// Order is a submitted pickup order. It is never mutated by the pricing core
// after creation; status changes go through the order store.
type Order struct {
	ID                 string
	UserID             string
	CustomerName       string
	CustomerEmail      string
	PickupTime         time.Time
	PickupInstructions string
	Lines              []CartLine
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	Status             OrderStatus
	CreatedAt          time.Time
}

// TotalItems sums the quantities of the order lines
func (o *Order) TotalItems() int {
	return TotalItems(o.Lines)
}

// WithStatus returns a copy of the order with a new status, enforcing transition rules
func (o Order) WithStatus(next OrderStatus) (Order, error) {
	if !o.Status.CanTransition(next) {
		return o, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Lines = append([]CartLine(nil), o.Lines...)
	o.Status = next
	return o, nil
}

// ReadableTimeLayout formats the human-readable creation time stored with an order
const ReadableTimeLayout = "Mon, Jan 2, 2006, 3:04 PM"

// OrderDocumentLine is one entry of the persisted productList
type OrderDocumentLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderDocument is the shape an order takes in the document store
type OrderDocument struct {
	UserID             string              `json:"userId"`
	CustomerName       string              `json:"customerName"`
	CustomerEmail      string              `json:"customerEmail"`
	PickupTime         string              `json:"pickupTime"`
	PickupInstructions string              `json:"pickupInstructions"`
	ProductList        []OrderDocumentLine `json:"productList"`
	OrderTotal         decimal.Decimal     `json:"orderTotal"`
	OrderStatus        string              `json:"orderStatus"`
	CreatedAt          time.Time           `json:"createdAt"`
	ReadableCreatedAt  string              `json:"readableCreatedAt"`
}

// Document converts the order into its persisted form
func (o *Order) Document() OrderDocument {
	lines := make([]OrderDocumentLine, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = OrderDocumentLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	return OrderDocument{
		UserID:             o.UserID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		PickupTime:         o.PickupTime.UTC().Format(time.RFC3339),
		PickupInstructions: o.PickupInstructions,
		ProductList:        lines,
		OrderTotal:         o.Total,
		OrderStatus:        o.Status.String(),
		CreatedAt:          o.CreatedAt,
		ReadableCreatedAt:  o.CreatedAt.Format(ReadableTimeLayout),
	}
}
