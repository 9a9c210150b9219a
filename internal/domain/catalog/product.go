package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Product represents a listing offered by a seller
// It is the aggregate root for catalog operations
type Product struct {
	shared.AggregateRoot
	SellerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Description      string          `gorm:"type:text"`
	Price            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"` // e.g. "pcs", "kg", "box"
	MinOrderQuantity int             `gorm:"not null;default:1"`
	StockQuantity    int             `gorm:"not null;default:0"`
	// No default tag here: gorm would skip the zero value on insert and
	// the column default would resurrect a deactivated listing
	IsActive bool `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing
func NewProduct(sellerID uuid.UUID, name, description, unit string, price decimal.Decimal, moq, stock int) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}
	if price.IsNegative() || price.IsZero() {
		return nil, shared.NewValidationError("Price must be greater than zero")
	}
	if moq < 1 {
		return nil, shared.NewValidationError("Minimum order quantity must be at least 1")
	}
	if stock < 0 {
		return nil, shared.NewValidationError("Stock quantity cannot be negative")
	}

	product := &Product{
		AggregateRoot:    shared.NewAggregateRoot(),
		SellerID:         sellerID,
		Name:             strings.TrimSpace(name),
		Description:      strings.TrimSpace(description),
		Price:            price,
		Unit:             unit,
		MinOrderQuantity: moq,
		StockQuantity:    stock,
		IsActive:         true,
	}

	product.Record(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the listing's mutable fields
func (p *Product) Update(name, description string, price decimal.Decimal, moq, stock int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.IsNegative() || price.IsZero() {
		return shared.NewValidationError("Price must be greater than zero")
	}
	if moq < 1 {
		return shared.NewValidationError("Minimum order quantity must be at least 1")
	}
	if stock < 0 {
		return shared.NewValidationError("Stock quantity cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Price = price
	p.MinOrderQuantity = moq
	p.StockQuantity = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the listing orderable
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate hides the listing from retailers
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// CanFulfill reports whether an order of the given quantity is acceptable
func (p *Product) CanFulfill(quantity int) error {
	if !p.IsActive {
		return shared.NewValidationError("Product is not available for ordering")
	}
	if quantity < p.MinOrderQuantity {
		return shared.NewValidationError("Quantity is below the minimum order quantity")
	}
	if quantity > p.StockQuantity {
		return shared.ErrInsufficientStock
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewValidationError("Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewValidationError("Unit cannot exceed 20 characters")
	}
	return nil
}
