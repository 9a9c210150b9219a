package telemetry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// OrderMetrics tracks the order workflow: placements, status
// transitions, invoice generation, and SMS delivery.
type OrderMetrics struct {
	logger *zap.Logger

	ordersPlacedTotal  metric.Int64Counter
	orderAmountTotal   metric.Float64Counter
	transitionsTotal   metric.Int64Counter
	invoicesTotal      metric.Int64Counter
	notificationsTotal metric.Int64Counter
}

// NewOrderMetrics registers the order workflow instruments on a meter
func NewOrderMetrics(meter metric.Meter, logger *zap.Logger) (*OrderMetrics, error) {
	om := &OrderMetrics{logger: logger}

	var err error
	if om.ordersPlacedTotal, err = meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of orders placed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create orders_placed_total: %w", err)
	}

	if om.orderAmountTotal, err = meter.Float64Counter(
		"orders_amount_total",
		metric.WithDescription("Total monetary value of placed orders"),
	); err != nil {
		return nil, fmt.Errorf("failed to create orders_amount_total: %w", err)
	}

	if om.transitionsTotal, err = meter.Int64Counter(
		"order_status_transitions_total",
		metric.WithDescription("Total order status transitions by target status"),
	); err != nil {
		return nil, fmt.Errorf("failed to create order_status_transitions_total: %w", err)
	}

	if om.invoicesTotal, err = meter.Int64Counter(
		"invoices_generated_total",
		metric.WithDescription("Total invoice generation attempts by result"),
	); err != nil {
		return nil, fmt.Errorf("failed to create invoices_generated_total: %w", err)
	}

	if om.notificationsTotal, err = meter.Int64Counter(
		"sms_notifications_total",
		metric.WithDescription("Total SMS notification attempts by result"),
	); err != nil {
		return nil, fmt.Errorf("failed to create sms_notifications_total: %w", err)
	}

	return om, nil
}

func (om *OrderMetrics) RecordOrderPlaced(ctx context.Context, amount decimal.Decimal) {
	om.ordersPlacedTotal.Add(ctx, 1)
	amt, _ := amount.Float64()
	om.orderAmountTotal.Add(ctx, amt)
}

func (om *OrderMetrics) RecordTransition(ctx context.Context, toStatus string) {
	om.transitionsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("to_status", toStatus)))
}

func (om *OrderMetrics) RecordInvoiceGenerated(ctx context.Context, success bool) {
	om.invoicesTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("success", success)))
}

func (om *OrderMetrics) RecordNotification(ctx context.Context, success bool) {
	om.notificationsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("success", success)))
}
