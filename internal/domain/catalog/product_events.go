package catalog

import (
	"github.com/tradelink/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product.created"
)

// ProductCreatedEvent is emitted when a seller lists a new product
type ProductCreatedEvent struct {
	shared.EventBase
	SellerID string `json:"seller_id"`
	Name     string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		EventBase: shared.NewEventBase(EventTypeProductCreated, "Product", product.ID),
		SellerID:  product.SellerID.String(),
		Name:      product.Name,
	}
}
