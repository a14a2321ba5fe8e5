package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Dafin1723/fikri-production/internal/models"
)

const sheetName = "Orders"

// TimeLayout is used for every timestamp printed in a report.
const TimeLayout = "2006-01-02 15:04"

type column struct {
	title string
	width float64
	value func(i int, o models.Order, loc *time.Location) interface{}
}

var workbookColumns = []column{
	{"No", 6, func(i int, _ models.Order, _ *time.Location) interface{} { return i + 1 }},
	{"Queue Number", 16, func(_ int, o models.Order, _ *time.Location) interface{} { return o.QueueNumber }},
	{"Name", 22, func(_ int, o models.Order, _ *time.Location) interface{} { return o.CustomerName }},
	{"Email", 26, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Email }},
	{"Contact", 16, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Contact }},
	{"Print Type", 14, func(_ int, o models.Order, _ *time.Location) interface{} { return o.PrintType }},
	{"Color", 12, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Color }},
	{"Size", 10, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Size }},
	{"Paper", 14, func(_ int, o models.Order, _ *time.Location) interface{} { return o.PaperType }},
	{"Quantity", 10, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Quantity }},
	{"Pickup Date", 14, func(_ int, o models.Order, _ *time.Location) interface{} { return o.PickupDate }},
	{"File Count", 10, func(_ int, o models.Order, _ *time.Location) interface{} { return len(o.AttachedFiles) }},
	{"Status", 14, func(_ int, o models.Order, _ *time.Location) interface{} { return statusText(o) }},
	{"Notes", 30, func(_ int, o models.Order, _ *time.Location) interface{} { return o.Notes }},
	{"Created At", 18, func(_ int, o models.Order, loc *time.Location) interface{} {
		return o.CreatedAt.In(loc).Format(TimeLayout)
	}},
}

var statusFills = map[models.OrderStatus]string{
	models.OrderStatusPending:    "#FFF2CC",
	models.OrderStatusProcessing: "#DDEBF7",
	models.OrderStatusDone:       "#E2EFDA",
}

func statusText(o models.Order) string {
	if o.StatusLabel != "" {
		return o.StatusLabel
	}
	return string(o.Status)
}

// OrdersWorkbook renders orders as an xlsx workbook with a merged title
// row above a styled header. Timestamps are shown in generatedAt's zone.
func OrdersWorkbook(orders []models.Order, title string, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(workbookColumns))
	if err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#305496"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}
	statusStyles := make(map[models.OrderStatus]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
			Border:    thinBorder(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create status style: %w", err)
		}
		statusStyles[status] = id
	}

	heading := fmt.Sprintf("%s (generated %s)", title, generatedAt.Format(TimeLayout))
	if err := f.SetCellValue(sheetName, "A1", heading); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("failed to merge title row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheetName, 1, 24); err != nil {
		return nil, err
	}

	for i, col := range workbookColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, name+"2", col.title); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetName, "A2", lastCol+"2", headerStyle); err != nil {
		return nil, err
	}

	loc := generatedAt.Location()
	statusCol := statusColumn()
	for i, order := range orders {
		row := i + 3
		for c, col := range workbookColumns {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, col.value(i, order, loc)); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
		if err := styleRange(f, 1, len(workbookColumns), row, cellStyle); err != nil {
			return nil, err
		}
		if style, ok := statusStyles[order.Status]; ok && statusCol > 0 {
			if err := styleRange(f, statusCol, statusCol, row, style); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// styleRange applies style to columns from..to of row.
func styleRange(f *excelize.File, from, to, row, style int) error {
	first, err := excelize.CoordinatesToCellName(from, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(to, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, first, last, style)
}

func statusColumn() int {
	for i, col := range workbookColumns {
		if col.title == "Status" {
			return i + 1
		}
	}
	return 0
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#BFBFBF", Style: 1},
		{Type: "top", Color: "#BFBFBF", Style: 1},
		{Type: "right", Color: "#BFBFBF", Style: 1},
		{Type: "bottom", Color: "#BFBFBF", Style: 1},
	}
}
