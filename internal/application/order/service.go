package order

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	invoiceapp "github.com/tradelink/backend/internal/application/invoice"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/infrastructure/telemetry"
)

// Service drives the order lifecycle: placement, status transitions,
// visibility-checked reads, and invoice downloads.
type Service struct {
	orders   order.Repository
	products catalog.ProductRepository
	timeline order.TimelineRepository
	uow      UnitOfWork
	invoices *invoiceapp.Generator

	eventPublisher shared.EventPublisher
	metrics        *telemetry.OrderMetrics
	logger         *zap.Logger
}

// NewService creates an order service
func NewService(
	orders order.Repository,
	products catalog.ProductRepository,
	timeline order.TimelineRepository,
	uow UnitOfWork,
	invoices *invoiceapp.Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:   orders,
		products: products,
		timeline: timeline,
		uow:      uow,
		invoices: invoices,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics attaches workflow metrics recording
func (s *Service) SetMetrics(metrics *telemetry.OrderMetrics) {
	s.metrics = metrics
}

// PlaceOrder validates and creates a new order. Every check runs before
// any mutation; the stock decrement, order insert, and initial timeline
// entry then commit in one transaction.
func (s *Service) PlaceOrder(ctx context.Context, retailerID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewValidationError("Invalid product ID")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.CanFulfill(req.Quantity); err != nil {
		return nil, err
	}

	orderNumber, err := s.orders.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		orderNumber,
		retailerID,
		product.SellerID,
		product.ID,
		product.Name,
		product.Unit,
		req.Quantity,
		product.Price,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTransaction(ctx, func(orders order.Repository, products catalog.ProductRepository, timeline order.TimelineRepository) error {
		// The stock guard runs inside the transaction, so two concurrent
		// placements can never both take the last units
		if err := products.DecrementStock(ctx, product.ID, req.Quantity); err != nil {
			return err
		}
		if err := orders.Save(ctx, o); err != nil {
			return err
		}
		return timeline.Append(ctx, order.NewTimelineEvent(o.ID, order.StatusOrdered, "Order placed"))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("retailer_id", retailerID.String()),
		zap.String("seller_id", o.SellerID.String()),
	)
	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(ctx, o.TotalAmount)
	}

	// Notification happens last and never fails the placement
	s.publishEvents(ctx, o.Events())
	o.ClearEvents()

	resp := ToOrderResponse(o)
	return &resp, nil
}

// TransitionStatus moves an order to the target status on behalf of its
// seller. The status commit comes first; the timeline entry, stock
// restore on cancellation, invoice generation, and notification follow
// it and never roll it back.
func (s *Service) TransitionStatus(ctx context.Context, sellerID, orderID uuid.UUID, target order.Status) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.OwnedBySeller(sellerID) {
		// Reported as missing rather than forbidden so callers cannot
		// tell whether another seller's order exists
		return nil, shared.ErrNotFound
	}

	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	// Optimistic lock: a concurrent transition that committed first
	// surfaces here as a conflict
	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	if err := s.timeline.Append(ctx, order.NewTimelineEvent(o.ID, target, "Order has been "+target.Label())); err != nil {
		// The transition is already committed; the missing audit entry
		// is logged, not surfaced
		s.logger.Error("failed to append timeline event",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
	}

	if target == order.StatusCancelled {
		// Cancellation releases the reserved units back to the listing.
		// The cancellation is already committed, so a failed restore is
		// logged for manual reconciliation, not surfaced
		if err := s.products.RestoreStock(ctx, o.ProductID, o.Quantity); err != nil {
			s.logger.Error("failed to restore stock for cancelled order",
				zap.String("order_number", o.OrderNumber),
				zap.String("product_id", o.ProductID.String()),
				zap.Int("quantity", o.Quantity),
				zap.Error(err),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(ctx, target.String())
	}

	if target == order.StatusShipped && !o.HasInvoice() {
		s.generateInvoice(ctx, o)
	}

	// Notification happens last and never fails the transition
	s.publishEvents(ctx, o.Events())
	o.ClearEvents()

	resp := ToOrderResponse(o)
	return &resp, nil
}

// generateInvoice renders and attaches the invoice on first shipment.
// Failures are logged and swallowed; the shipment stands either way.
func (s *Service) generateInvoice(ctx context.Context, o *order.Order) {
	artifact, err := s.invoices.Generate(ctx, o)
	if err != nil {
		s.logger.Warn("invoice generation failed",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordInvoiceGenerated(ctx, false)
		}
		return
	}

	o.AttachInvoice(artifact.InvoiceNumber, artifact.Path)
	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		s.logger.Warn("failed to record invoice on order",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordInvoiceGenerated(ctx, false)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.RecordInvoiceGenerated(ctx, true)
	}
}

// GetOrder returns an order visible only to its retailer or seller
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.visibleOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetTimeline returns the audit trail of an order, ascending by time
func (s *Service) GetTimeline(ctx context.Context, userID, orderID uuid.UUID) ([]TimelineEventResponse, error) {
	o, err := s.visibleOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	events, err := s.timeline.ListForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return ToTimelineResponses(events), nil
}

// ListForRetailer returns the orders a retailer has placed
func (s *Service) ListForRetailer(ctx context.Context, retailerID uuid.UUID, filter ListFilter) ([]OrderResponse, int64, error) {
	orders, total, err := s.orders.FindByRetailer(ctx, retailerID, toListQuery(filter))
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// ListForSeller returns the orders a seller has received
func (s *Service) ListForSeller(ctx context.Context, sellerID uuid.UUID, filter ListFilter) ([]OrderResponse, int64, error) {
	orders, total, err := s.orders.FindBySeller(ctx, sellerID, toListQuery(filter))
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// DownloadInvoice opens the stored invoice PDF for an involved party.
// The filename returned is the invoice number with a .pdf extension.
func (s *Service) DownloadInvoice(ctx context.Context, userID, orderID uuid.UUID) (io.ReadCloser, string, error) {
	o, err := s.visibleOrder(ctx, userID, orderID)
	if err != nil {
		return nil, "", err
	}
	if !o.HasInvoice() {
		return nil, "", shared.NewDomainError(shared.CodeNotFound, "No invoice has been generated for this order")
	}

	r, err := s.invoices.Open(ctx, o.InvoicePath)
	if err != nil {
		return nil, "", shared.NewIOError("Failed to open invoice: " + err.Error())
	}
	return r, o.InvoiceNumber + ".pdf", nil
}

func (s *Service) visibleOrder(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.InvolvedParty(userID) {
		return nil, shared.ErrForbidden
	}
	return o, nil
}

func (s *Service) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}

func toListQuery(filter ListFilter) order.ListQuery {
	return order.ListQuery{
		Status:   order.Status(filter.Status),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}
