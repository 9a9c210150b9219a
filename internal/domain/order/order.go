package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/shared"
)

// Order represents a retailer's purchase of a single product from a seller.
// It is the aggregate root of the order lifecycle; Status is only ever
// mutated through TransitionTo.
type Order struct {
	shared.AggregateRoot
	OrderNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	RetailerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`

	// Snapshots taken at placement time. Later product changes never
	// affect an existing order.
	ProductName string          `gorm:"type:varchar(200);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Status        Status `gorm:"type:varchar(20);not null;default:'ordered'"`
	Notes         string `gorm:"type:text"`
	InvoiceNumber string `gorm:"type:varchar(40)"`
	InvoicePath   string `gorm:"type:varchar(500)"`

	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in the initial status with amounts computed
// from the placement-time snapshot. TotalAmount is computed exactly once.
func NewOrder(orderNumber string, retailerID, sellerID, productID uuid.UUID, productName, unit string, quantity int, unitPrice decimal.Decimal, notes string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if retailerID == uuid.Nil || sellerID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewValidationError("Retailer, seller, and product are required")
	}
	if retailerID == sellerID {
		return nil, shared.NewValidationError("Sellers cannot order their own products")
	}
	if productName == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Unit price must be positive")
	}

	o := &Order{
		AggregateRoot: shared.NewAggregateRoot(),
		OrderNumber:   orderNumber,
		RetailerID:    retailerID,
		SellerID:      sellerID,
		ProductID:     productID,
		ProductName:   productName,
		Unit:          unit,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:        StatusOrdered,
		Notes:         strings.TrimSpace(notes),
	}

	o.Record(NewOrderPlacedEvent(o))

	return o, nil
}

// TransitionTo moves the order to the target status after validating the
// transition, stamping ShippedAt/DeliveredAt on first entry into those
// states. Terminal orders reject every transition.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("Unknown order status: " + target.String())
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeTerminalState,
			"Order is already "+o.Status.Label()+" and cannot be updated")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidTransition,
			"Cannot transition order from "+o.Status.Label()+" to "+target.Label())
	}

	from := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	}

	o.Record(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// AttachInvoice records the generated invoice artifact. It is a no-op if
// an invoice is already attached, keeping the trigger idempotent.
func (o *Order) AttachInvoice(invoiceNumber, path string) {
	if o.InvoicePath != "" {
		return
	}
	o.InvoiceNumber = invoiceNumber
	o.InvoicePath = path
	o.UpdatedAt = time.Now()
}

// HasInvoice reports whether an invoice artifact has been generated
func (o *Order) HasInvoice() bool {
	return o.InvoicePath != ""
}

// IsTerminal reports whether the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// InvolvedParty reports whether the given user is the retailer or seller
// on this order
func (o *Order) InvolvedParty(userID uuid.UUID) bool {
	return o.RetailerID == userID || o.SellerID == userID
}

// OwnedBySeller reports whether the given seller owns this order
func (o *Order) OwnedBySeller(sellerID uuid.UUID) bool {
	return o.SellerID == sellerID
}
