package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelink/backend/internal/domain/catalog"
)

// CreateProductRequest contains the data for a new listing
type CreateProductRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	Unit             string          `json:"unit" binding:"required,max=20"`
	MinOrderQuantity int             `json:"min_order_quantity" binding:"omitempty,gt=0"`
	StockQuantity    int             `json:"stock_quantity" binding:"omitempty,gte=0"`
}

// UpdateProductRequest contains the mutable listing fields
type UpdateProductRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	MinOrderQuantity int             `json:"min_order_quantity" binding:"omitempty,gt=0"`
	StockQuantity    int             `json:"stock_quantity" binding:"omitempty,gte=0"`
}

// ProductResponse is the outward representation of a listing
type ProductResponse struct {
	ID               string          `json:"id"`
	SellerID         string          `json:"seller_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Unit             string          `json:"unit"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	StockQuantity    int             `json:"stock_quantity"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its outward representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID.String(),
		SellerID:         p.SellerID.String(),
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Unit:             p.Unit,
		MinOrderQuantity: p.MinOrderQuantity,
		StockQuantity:    p.StockQuantity,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
