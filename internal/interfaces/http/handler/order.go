package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orderapp "github.com/tradelink/backend/internal/application/order"
	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/interfaces/http/middleware"
)

// OrderHandler exposes order placement, lifecycle and lookup endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
	}
}

// RegisterRoutes registers order routes on the given router group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", middleware.RequireRole(identity.RoleRetailer.String()), h.Place)
		orders.PUT("/:id/status", middleware.RequireRole(identity.RoleSeller.String()), h.Transition)
		orders.GET("/:id", h.Get)
		orders.GET("/:id/timeline", h.GetTimeline)
		orders.GET("/:id/invoice", h.DownloadInvoice)
		orders.GET("/purchases", middleware.RequireRole(identity.RoleRetailer.String()), h.ListPurchases)
		orders.GET("/sales", middleware.RequireRole(identity.RoleSeller.String()), h.ListSales)
	}
}

// Place creates a new order for the authenticated retailer
func (h *OrderHandler) Place(c *gin.Context) {
	retailerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	placed, err := h.orderService.PlaceOrder(c.Request.Context(), retailerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, placed)
}

// Transition moves an order to a new status on behalf of its seller
func (h *OrderHandler) Transition(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req orderapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidBody(c, err)
		return
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		h.HandleError(c, shared.NewValidationError("Unknown order status: "+req.Status))
		return
	}

	updated, err := h.orderService.TransitionStatus(c.Request.Context(), sellerID, orderID, target)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Get returns a single order visible to the authenticated user
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetTimeline returns an order's status history in chronological order
func (h *OrderHandler) GetTimeline(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	events, err := h.orderService.GetTimeline(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// DownloadInvoice streams the order's invoice PDF
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	reader, filename, err := h.orderService.DownloadInvoice(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/pdf")
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

// ListPurchases returns the authenticated retailer's orders
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	retailerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	results, total, err := h.orderService.ListForRetailer(c.Request.Context(), retailerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// ListSales returns the authenticated seller's orders
func (h *OrderHandler) ListSales(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	results, total, err := h.orderService.ListForSeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

func (h *OrderHandler) bindListFilter(c *gin.Context) (orderapp.ListFilter, bool) {
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return filter, false
	}
	if filter.Status != "" && !order.Status(filter.Status).IsValid() {
		h.HandleError(c, shared.NewValidationError("Unknown order status: "+filter.Status))
		return filter, false
	}
	return filter, true
}
