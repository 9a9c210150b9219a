package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminapp "github.com/tradelink/backend/internal/application/admin"
	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/interfaces/http/middleware"
)

// AdminHandler exposes the platform administration endpoints
type AdminHandler struct {
	BaseHandler
	adminService *adminapp.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *adminapp.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// RegisterRoutes registers admin routes on the given router group
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireRole(identity.RoleAdmin.String()))
	{
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:id/activate", h.ActivateUser)
		admin.PATCH("/users/:id/deactivate", h.DeactivateUser)
		admin.GET("/stats", h.Stats)
		admin.GET("/activity", h.RecentActivity)
	}
}

// ListUsers returns accounts filtered by role or search keyword, paginated
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter adminapp.ListUsersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// ActivateUser re-enables a deactivated account
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	userID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.ActivateUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// DeactivateUser disables a seller or retailer account
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	userID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.DeactivateUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Stats returns the marketplace-wide dashboard numbers
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// RecentActivity returns the latest orders across the platform
func (h *AdminHandler) RecentActivity(c *gin.Context) {
	orders, err := h.adminService.RecentActivity(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
