package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

const (
	OrderPlacedEvent        = "order.placed"
	OrderStatusChangedEvent = "order.status_changed"
)

type OrderPlaced struct {
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"total_items"`
	PickupTime time.Time       `json:"pickup_time"`
}

type OrderStatusChanged struct {
	OrderID string               `json:"order_id"`
	From    entities.OrderStatus `json:"from"`
	To      entities.OrderStatus `json:"to"`
}

// OrderStreamID names the event stream of a single order
func OrderStreamID(orderID string) string {
	return "order-" + orderID
}

// NewOrderPlaced builds the event recorded once an order has been persisted
func NewOrderPlaced(order *entities.Order) Event {
	return NewEventAt(OrderPlacedEvent, OrderStreamID(order.ID), OrderPlaced{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total,
		TotalItems: order.TotalItems(),
		PickupTime: order.PickupTime,
	}, order.CreatedAt)
}

// NewOrderStatusChanged builds the event recorded after a status transition
func NewOrderStatusChanged(orderID string, from, to entities.OrderStatus, at time.Time) Event {
	return NewEventAt(OrderStatusChangedEvent, OrderStreamID(orderID), OrderStatusChanged{
		OrderID: orderID,
		From:    from,
		To:      to,
	}, at)
}
