package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reportapp "github.com/tradelink/backend/internal/application/report"
	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/interfaces/http/middleware"
)

// StatsHandler exposes per-account order statistics
type StatsHandler struct {
	BaseHandler
	statsService *reportapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *reportapp.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsService: statsService,
	}
}

// RegisterRoutes registers stats routes on the given router group
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/stats")
	{
		stats.GET("/purchases", middleware.RequireRole(identity.RoleRetailer.String()), h.PurchaseStats)
		stats.GET("/sales", middleware.RequireRole(identity.RoleSeller.String()), h.SalesStats)
	}
}

// PurchaseStats returns order statistics for the authenticated retailer
func (h *StatsHandler) PurchaseStats(c *gin.Context) {
	retailerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.ForRetailer(c.Request.Context(), retailerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SalesStats returns order statistics for the authenticated seller
func (h *StatsHandler) SalesStats(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.ForSeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
