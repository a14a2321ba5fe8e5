package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/reports"
	"github.com/Dafin1723/fikri-production/internal/services"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileTime  = "20060102_150405"
)

type ExportHandler struct {
	orders   *services.OrderService
	shopName string
	location *time.Location
	now      func() time.Time
}

func NewExportHandler(orders *services.OrderService, shopName string, location *time.Location) *ExportHandler {
	if location == nil {
		location = time.Local
	}
	return &ExportHandler{
		orders:   orders,
		shopName: shopName,
		location: location,
		now:      time.Now,
	}
}

func (h *ExportHandler) title() string {
	return h.shopName + " Order Report"
}

// ExportExcel godoc
// @Summary     Export orders as a spreadsheet
// @Description Accepts the same status and search filters as the order list. All orders are exported when none are given.
// @Tags        admin
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    AdminSession
// @Param       status query string false "pending, processing or done"
// @Param       search query string false "Case-insensitive search term"
// @Success     200 {file} file
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, "list orders", err)
		return
	}

	now := h.now().In(h.location)
	data, err := reports.OrdersWorkbook(orders, h.title(), now)
	if err != nil {
		respondError(c, "export orders to excel", err)
		return
	}

	attachment(c, "orders_"+now.Format(exportFileTime)+".xlsx", xlsxContentType, data)
}

// ExportPDF godoc
// @Summary     Export orders as a PDF report
// @Tags        admin
// @Produce     application/pdf
// @Security    AdminSession
// @Param       status query string false "pending, processing or done"
// @Param       search query string false "Case-insensitive search term"
// @Success     200 {file} file
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/export/pdf [get]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, "list orders", err)
		return
	}

	now := h.now().In(h.location)
	data, err := reports.OrdersPDF(orders, h.title(), now)
	if err != nil {
		respondError(c, "export orders to pdf", err)
		return
	}

	attachment(c, "orders_"+now.Format(exportFileTime)+".pdf", "application/pdf", data)
}
