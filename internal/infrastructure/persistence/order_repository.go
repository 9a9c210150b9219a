package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its human-readable number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByRetailer returns orders placed by a retailer, newest first
func (r *GormOrderRepository) FindByRetailer(ctx context.Context, retailerID uuid.UUID, query order.ListQuery) ([]order.Order, int64, error) {
	return r.findForParty(ctx, "retailer_id", retailerID, query)
}

// FindBySeller returns orders received by a seller, newest first
func (r *GormOrderRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, query order.ListQuery) ([]order.Order, int64, error) {
	return r.findForParty(ctx, "seller_id", sellerID, query)
}

func (r *GormOrderRepository) findForParty(ctx context.Context, column string, userID uuid.UUID, query order.ListQuery) ([]order.Order, int64, error) {
	query = query.Normalized()

	tx := r.db.WithContext(ctx).Model(&order.Order{}).Where(column+" = ?", userID)
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []order.Order
	err := tx.
		Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Save persists a new order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// SaveWithLock persists an existing order using optimistic locking. The
// version column guards the update; when another transition committed
// first, RowsAffected is zero and the caller gets a concurrency conflict.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	currentVersion := o.Version
	o.Version++
	o.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND version = ?", o.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":         o.Status,
			"invoice_number": o.InvoiceNumber,
			"invoice_path":   o.InvoicePath,
			"shipped_at":     o.ShippedAt,
			"delivered_at":   o.DeliveredAt,
			"version":        o.Version,
			"updated_at":     o.UpdatedAt,
		})
	if result.Error != nil {
		o.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		o.Version = currentVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountByStatus counts a user's orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, userID uuid.UUID, asSeller bool, status order.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where(partyColumn(asSeller)+" = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// CountForUser counts all of a user's orders, cancelled included
func (r *GormOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, asSeller bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where(partyColumn(asSeller)+" = ?", userID).
		Count(&count).Error
	return count, err
}

// SumAmountForUser sums TotalAmount over the user's non-cancelled orders
func (r *GormOrderRepository) SumAmountForUser(ctx context.Context, userID uuid.UUID, asSeller bool) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where(partyColumn(asSeller)+" = ? AND status <> ?", userID, order.StatusCancelled).
		Select("SUM(total_amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// CountAll counts every order on the platform, cancelled included
func (r *GormOrderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&count).Error
	return count, err
}

// SumAmountAll sums TotalAmount over all non-cancelled orders
func (r *GormOrderRepository) SumAmountAll(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("status <> ?", order.StatusCancelled).
		Select("SUM(total_amount)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindRecent returns the latest orders across the platform, newest first
func (r *GormOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	if limit < 1 {
		limit = 10
	}

	var orders []order.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// GenerateOrderNumber produces the next order number in the form
// ORD-<year>-<seq>, retrying on collision
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	var lastOrder order.Order
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	orderNumber := fmt.Sprintf("%s%05d", prefix, nextNum)
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&order.Order{}).
			Where("order_number = ?", orderNumber).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return orderNumber, nil
		}
		nextNum++
		orderNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
	}

	return "", fmt.Errorf("failed to generate a unique order number after 100 attempts")
}

func partyColumn(asSeller bool) string {
	if asSeller {
		return "seller_id"
	}
	return "retailer_id"
}
