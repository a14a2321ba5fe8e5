package reports_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/reports"
)

var generatedAt = time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

func sampleOrders(n int) []models.Order {
	statuses := models.OrderStatuses
	orders := make([]models.Order, n)
	for i := range orders {
		orders[i] = models.Order{
			ID:            int64(i + 1),
			QueueNumber:   fmt.Sprintf("20250101-%03d", i+1),
			CustomerName:  "Customer with a rather long name number " + fmt.Sprint(i),
			Contact:       "08123",
			Email:         "c@x.com",
			PrintType:     "color",
			Color:         "cmyk",
			Size:          "A4",
			PaperType:     "glossy",
			Quantity:      i + 1,
			PickupDate:    "2025-01-05",
			Notes:         "café au lait",
			AttachedFiles: []string{"a.pdf"},
			Status:        statuses[i%len(statuses)],
			CreatedAt:     generatedAt.Add(-time.Duration(i) * time.Minute),
		}
	}
	return orders
}

func TestOrdersWorkbook(t *testing.T) {
	orders := sampleOrders(3)
	data, err := reports.OrdersWorkbook(orders, "Order Report", generatedAt)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(title, "Order Report"))

	header, err := f.GetCellValue("Orders", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Queue Number", header)

	queue, err := f.GetCellValue("Orders", "B5")
	require.NoError(t, err)
	assert.Equal(t, "20250101-003", queue)

	merged, err := f.GetMergeCells("Orders")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "O1", merged[0].GetEndAxis())
}

func TestOrdersWorkbook_StatusCellsTinted(t *testing.T) {
	data, err := reports.OrdersWorkbook(sampleOrders(3), "Order Report", generatedAt)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	status, err := f.GetCellValue("Orders", "M3")
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatuses[0]), status)

	styles := make(map[int]bool)
	for row := 3; row <= 5; row++ {
		plain, err := f.GetCellStyle("Orders", fmt.Sprintf("L%d", row))
		require.NoError(t, err)
		tinted, err := f.GetCellStyle("Orders", fmt.Sprintf("M%d", row))
		require.NoError(t, err)
		assert.NotEqual(t, plain, tinted, "row %d", row)
		styles[tinted] = true
	}
	assert.Len(t, styles, 3, "each status has its own fill")
}

func TestOrdersWorkbook_Empty(t *testing.T) {
	data, err := reports.OrdersWorkbook(nil, "Order Report", generatedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestOrdersPDF(t *testing.T) {
	for _, n := range []int{0, 1, 60} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			data, err := reports.OrdersPDF(sampleOrders(n), "Order Report", generatedAt)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestReceiptPDF(t *testing.T) {
	order := sampleOrders(1)[0]
	order.StatusLabel = "Waiting"

	data, err := reports.ReceiptPDF(order, "Fikri Production")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
