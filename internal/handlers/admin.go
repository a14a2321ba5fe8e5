package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/services"
)

type AdminOrdersHandler struct {
	orders *services.OrderService
}

func NewAdminOrdersHandler(orders *services.OrderService) *AdminOrdersHandler {
	return &AdminOrdersHandler{
		orders: orders,
	}
}

func filterFromQuery(c *gin.Context) models.OrderFilter {
	return models.OrderFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
}

// ListOrders godoc
// @Summary     List orders
// @Description Returns orders newest first, optionally filtered by status and a search term matched against name, queue number, email and contact. Overall counts are included.
// @Tags        admin
// @Produce     json
// @Security    AdminSession
// @Param       status query string false "pending, processing or done"
// @Param       search query string false "Case-insensitive search term"
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/orders [get]
func (h *AdminOrdersHandler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.orders.ListOrders(ctx, filterFromQuery(c))
	if err != nil {
		respondError(c, "list orders", err)
		return
	}

	stats, err := h.orders.Stats(ctx)
	if err != nil {
		respondError(c, "count orders", err)
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders, Stats: stats})
}

// GetOrder godoc
// @Summary     Get order
// @Tags        admin
// @Produce     json
// @Security    AdminSession
// @Param       order_id path int true "Order ID"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id} [get]
func (h *AdminOrdersHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "load order", err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary     Update order status
// @Description Moves an order to pending, processing or done. Any state may follow any other.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    AdminSession
// @Param       order_id path int true "Order ID"
// @Param       request body models.StatusUpdateRequest true "New status"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/status [put]
func (h *AdminOrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orders.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, "update order status", err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary     Delete order
// @Description Deletes the order and its attached files.
// @Tags        admin
// @Produce     json
// @Security    AdminSession
// @Param       order_id path int true "Order ID"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id} [delete]
func (h *AdminOrdersHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.RemoveOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete order", err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "order " + order.QueueNumber + " deleted"})
}

// GetStats godoc
// @Summary     Order counts
// @Tags        admin
// @Produce     json
// @Security    AdminSession
// @Success     200 {object} models.OrderStats
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/stats [get]
func (h *AdminOrdersHandler) GetStats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "count orders", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ServeUpload godoc
// @Summary     Download an order attachment
// @Tags        admin
// @Produce     octet-stream
// @Security    AdminSession
// @Param       filename path string true "Stored file name"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/uploads/{filename} [get]
func (h *AdminOrdersHandler) ServeUpload(c *gin.Context) {
	name := c.Param("filename")
	rc, err := h.orders.OpenAttachment(c.Request.Context(), name)
	if err != nil {
		respondError(c, "open attachment", err)
		return
	}
	serveStored(c, rc, name)
}
