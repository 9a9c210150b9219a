package admin

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	identityapp "github.com/tradelink/backend/internal/application/identity"
	orderapp "github.com/tradelink/backend/internal/application/order"
	"github.com/tradelink/backend/internal/domain/catalog"
	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
)

// recentActivityLimit caps the platform activity feed
const recentActivityLimit = 10

// Service implements the platform administration operations: account
// listing and moderation, marketplace-wide statistics, and the recent
// activity feed.
type Service struct {
	users    identity.UserRepository
	products catalog.ProductRepository
	orders   order.Repository
	logger   *zap.Logger
}

// NewService creates an admin service
func NewService(users identity.UserRepository, products catalog.ProductRepository, orders order.Repository, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// ListUsers returns accounts matching the filter, newest first
func (s *Service) ListUsers(ctx context.Context, filter ListUsersFilter) ([]identityapp.UserInfo, int64, error) {
	domainFilter := identity.UserFilter{
		Keyword:  filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Role != "" {
		role := identity.Role(filter.Role)
		if !role.IsValid() {
			return nil, 0, shared.NewValidationError("Role must be seller, retailer, or admin")
		}
		domainFilter.Role = &role
	}

	users, total, err := s.users.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]identityapp.UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, identityapp.ToUserInfo(u))
	}
	return out, total, nil
}

// ActivateUser re-enables a deactivated account
func (s *Service) ActivateUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.Activate(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account activated",
		zap.String("user_id", u.ID.String()),
		zap.String("business_name", u.BusinessName),
	)
	info := identityapp.ToUserInfo(u)
	return &info, nil
}

// DeactivateUser disables an account. Accounts that themselves hold
// administration rights cannot be deactivated.
func (s *Service) DeactivateUser(ctx context.Context, userID uuid.UUID) (*identityapp.UserInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role.CanManageUsers() {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Administrator accounts cannot be deactivated")
	}
	if err := u.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account deactivated",
		zap.String("user_id", u.ID.String()),
		zap.String("business_name", u.BusinessName),
	)
	info := identityapp.ToUserInfo(u)
	return &info, nil
}

// Stats computes the marketplace-wide dashboard numbers
func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	for role, dest := range map[identity.Role]*int64{
		identity.RoleSeller:   &stats.TotalSellers,
		identity.RoleRetailer: &stats.TotalRetailers,
		identity.RoleAdmin:    &stats.TotalAdmins,
	} {
		n, err := s.users.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		*dest = n
	}
	stats.TotalUsers = stats.TotalSellers + stats.TotalRetailers + stats.TotalAdmins

	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = total

	active, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveProducts = active

	orders, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = orders

	sales, err := s.orders.SumAmountAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = sales

	return stats, nil
}

// RecentActivity returns the latest orders across the platform,
// newest first
func (s *Service) RecentActivity(ctx context.Context) ([]orderapp.OrderResponse, error) {
	orders, err := s.orders.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	return orderapp.ToOrderResponses(orders), nil
}
