package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/reports"
	"github.com/Dafin1723/fikri-production/internal/services"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

type OrdersHandler struct {
	orders   *services.OrderService
	shopName string
}

func NewOrdersHandler(orders *services.OrderService, shopName string) *OrdersHandler {
	return &OrdersHandler{
		orders:   orders,
		shopName: shopName,
	}
}

// SubmitOrder godoc
// @Summary     Submit a print order
// @Description Accepts the order form and up to 10 attachments. Every validation problem is reported at once.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       customer_name formData string true "Customer name"
// @Param       contact       formData string true "Phone or other contact"
// @Param       email         formData string true "Email address"
// @Param       print_type    formData string true "Print type"
// @Param       color         formData string true "Color"
// @Param       size          formData string true "Size"
// @Param       paper_type    formData string true "Paper type"
// @Param       quantity      formData int    true "Quantity (at least 1)"
// @Param       pickup_date   formData string true "Pickup date"
// @Param       notes         formData string false "Notes"
// @Param       files[]       formData file   false "Attachments (pdf, png, jpg, jpeg, docx)"
// @Success     200 {object} models.SubmitOrderResponse
// @Failure     400 {object} models.SubmitOrderResponse
// @Failure     413 {object} models.SubmitOrderResponse
// @Failure     500 {object} models.SubmitOrderResponse
// @Router      /orders [post]
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	err := c.Request.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, models.SubmitOrderResponse{
				Success: false,
				Errors:  []string{"the total upload size is too large"},
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.SubmitOrderResponse{
			Success: false,
			Errors:  []string{"failed to parse form: " + err.Error()},
		})
		return
	}
	if form := c.Request.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	var sub models.OrderSubmission
	if err := c.ShouldBindWith(&sub, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, models.SubmitOrderResponse{
			Success: false,
			Errors:  []string{"failed to read form: " + err.Error()},
		})
		return
	}

	result, err := h.orders.SubmitOrder(c.Request.Context(), sub, formFiles(c.Request.MultipartForm))
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, models.SubmitOrderResponse{Success: false, Errors: vErr.Errors})
			return
		}
		log.Printf("Error: failed to submit order: %v", err)
		c.JSON(http.StatusInternalServerError, models.SubmitOrderResponse{
			Success: false,
			Errors:  []string{internalErrorMessage},
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitOrderResponse{
		Success:     true,
		OrderID:     result.OrderID,
		QueueNumber: result.QueueNumber,
	})
}

// formFiles collects attachments sent as either files[] or files.
func formFiles(form *multipart.Form) []services.FileUpload {
	if form == nil {
		return nil
	}
	var headers []*multipart.FileHeader
	headers = append(headers, form.File["files[]"]...)
	headers = append(headers, form.File["files"]...)

	files := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, services.FileUpload{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}
	return files
}

// GetOrderStatus godoc
// @Summary     Check order status
// @Description Looks up an order by the queue number printed on the receipt. Surrounding spaces and letter case are ignored.
// @Tags        orders
// @Produce     json
// @Param       queue_number path string true "Queue number, e.g. 20250101-001"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/status/{queue_number} [get]
func (h *OrdersHandler) GetOrderStatus(c *gin.Context) {
	order, err := h.orders.LookupByQueueNumber(c.Request.Context(), c.Param("queue_number"))
	if errors.Is(err, services.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "order not found",
			Message: "no order matches that queue number",
		})
		return
	}
	if err != nil {
		respondError(c, "look up order", err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetReceipt godoc
// @Summary     Get order receipt
// @Tags        orders
// @Produce     json
// @Param       order_id path int true "Order ID"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/receipt [get]
func (h *OrdersHandler) GetReceipt(c *gin.Context) {
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

// GetReceiptPDF godoc
// @Summary     Download order receipt
// @Description Renders a printable receipt with the queue number as a QR code.
// @Tags        orders
// @Produce     application/pdf
// @Param       order_id path int true "Order ID"
// @Success     200 {file} file
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{order_id}/receipt.pdf [get]
func (h *OrdersHandler) GetReceiptPDF(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "load order", err)
		return
	}

	data, err := reports.ReceiptPDF(*order, h.shopName)
	if err != nil {
		respondError(c, "render receipt", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="receipt_`+order.QueueNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
