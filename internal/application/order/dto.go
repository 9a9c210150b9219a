package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelink/backend/internal/domain/order"
)

// PlaceOrderRequest contains the data for a new order
type PlaceOrderRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Notes     string `json:"notes"`
}

// TransitionRequest names the target status for a transition
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter contains filter options for order listings
type ListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// OrderResponse is the outward representation of an order
type OrderResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	RetailerID    string          `json:"retailer_id"`
	SellerID      string          `json:"seller_id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	StatusLabel   string          `json:"status_label"`
	Notes         string          `json:"notes,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	HasInvoice    bool            `json:"has_invoice"`
	ShippedAt     *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TimelineEventResponse is one entry of an order's audit trail
type TimelineEventResponse struct {
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToOrderResponse converts a domain order to its outward representation
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		RetailerID:    o.RetailerID.String(),
		SellerID:      o.SellerID.String(),
		ProductID:     o.ProductID.String(),
		ProductName:   o.ProductName,
		Unit:          o.Unit,
		Quantity:      o.Quantity,
		UnitPrice:     o.UnitPrice,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status.String(),
		StatusLabel:   o.Status.Label(),
		Notes:         o.Notes,
		InvoiceNumber: o.InvoiceNumber,
		HasInvoice:    o.HasInvoice(),
		ShippedAt:     o.ShippedAt,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}

// ToTimelineResponses converts timeline events
func ToTimelineResponses(events []order.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TimelineEventResponse{
			Status:     e.Status.String(),
			Message:    e.Message,
			OccurredAt: e.OccurredAt,
		})
	}
	return out
}
