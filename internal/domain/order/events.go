package order

import (
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Event types for the order context
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is emitted when a retailer places an order
type OrderPlacedEvent struct {
	shared.EventBase
	OrderNumber string          `json:"order_number"`
	RetailerID  string          `json:"retailer_id"`
	SellerID    string          `json:"seller_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventBase:   shared.NewEventBase(EventTypeOrderPlaced, "Order", o.ID),
		OrderNumber: o.OrderNumber,
		RetailerID:  o.RetailerID.String(),
		SellerID:    o.SellerID.String(),
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
	}
}

// OrderStatusChangedEvent is emitted on every successful status transition
type OrderStatusChangedEvent struct {
	shared.EventBase
	OrderNumber string `json:"order_number"`
	RetailerID  string `json:"retailer_id"`
	SellerID    string `json:"seller_id"`
	FromStatus  Status `json:"from_status"`
	ToStatus    Status `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		EventBase:   shared.NewEventBase(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderNumber: o.OrderNumber,
		RetailerID:  o.RetailerID.String(),
		SellerID:    o.SellerID.String(),
		FromStatus:  from,
		ToStatus:    to,
	}
}
