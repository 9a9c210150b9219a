package invoice

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	infrainvoice "github.com/tradelink/backend/internal/infrastructure/invoice"
)

// Artifact identifies a generated invoice document
type Artifact struct {
	InvoiceNumber string
	Path          string
}

// Generator produces the PDF invoice for an order and stores it. The
// invoice number is derived from the order number, so regenerating for
// the same order always yields the same identity.
type Generator struct {
	userRepo identity.UserRepository
	renderer infrainvoice.PDFRenderer
	store    infrainvoice.ArtifactStore
	logger   *zap.Logger
}

// NewGenerator creates an invoice generator
func NewGenerator(
	userRepo identity.UserRepository,
	renderer infrainvoice.PDFRenderer,
	store infrainvoice.ArtifactStore,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		userRepo: userRepo,
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
}

// Generate renders and stores the invoice for an order. Failures are
// wrapped as IO errors so callers can treat them as non-fatal.
func (g *Generator) Generate(ctx context.Context, o *order.Order) (*Artifact, error) {
	seller, err := g.userRepo.FindByID(ctx, o.SellerID)
	if err != nil {
		return nil, shared.NewIOError("Failed to load seller for invoice: " + err.Error())
	}
	retailer, err := g.userRepo.FindByID(ctx, o.RetailerID)
	if err != nil {
		return nil, shared.NewIOError("Failed to load retailer for invoice: " + err.Error())
	}

	invoiceNumber := "INV-" + o.OrderNumber

	html, err := infrainvoice.RenderHTML(infrainvoice.DocumentData{
		InvoiceNumber:   invoiceNumber,
		IssuedAt:        time.Now(),
		SellerName:      seller.BusinessName,
		SellerAddress:   seller.Address,
		SellerPhone:     seller.Phone,
		RetailerName:    retailer.BusinessName,
		RetailerAddress: retailer.Address,
		RetailerPhone:   retailer.Phone,
		ProductName:     o.ProductName,
		Unit:            o.Unit,
		Quantity:        o.Quantity,
		UnitPrice:       o.UnitPrice,
		TotalAmount:     o.TotalAmount,
	})
	if err != nil {
		return nil, shared.NewIOError("Failed to build invoice document: " + err.Error())
	}

	result, err := g.renderer.Render(ctx, &infrainvoice.RenderRequest{
		HTML:  html,
		Title: invoiceNumber,
	})
	if err != nil {
		return nil, shared.NewIOError("Failed to render invoice PDF: " + err.Error())
	}

	path, err := g.store.Store(ctx, o.SellerID, o.ID, result.PDFData)
	if err != nil {
		return nil, shared.NewIOError("Failed to store invoice PDF: " + err.Error())
	}

	g.logger.Info("invoice generated",
		zap.String("invoice_number", invoiceNumber),
		zap.String("order_number", o.OrderNumber),
		zap.String("path", path),
	)

	return &Artifact{
		InvoiceNumber: invoiceNumber,
		Path:          path,
	}, nil
}

// Open returns the stored PDF for download
func (g *Generator) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return g.store.Get(ctx, path)
}
