package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Dafin1723/fikri-production/internal/models"
)

type pdfColumn struct {
	title string
	width float64
	align string
	value func(i int, o models.Order, loc *time.Location) string
}

// Widths add up to the printable width of landscape A4 with 10mm margins.
var pdfColumns = []pdfColumn{
	{"No", 10, "C", func(i int, _ models.Order, _ *time.Location) string { return strconv.Itoa(i + 1) }},
	{"Queue", 26, "L", func(_ int, o models.Order, _ *time.Location) string { return o.QueueNumber }},
	{"Name", 36, "L", func(_ int, o models.Order, _ *time.Location) string { return o.CustomerName }},
	{"Contact", 28, "L", func(_ int, o models.Order, _ *time.Location) string { return o.Contact }},
	{"Print Type", 24, "L", func(_ int, o models.Order, _ *time.Location) string { return o.PrintType }},
	{"Color", 20, "L", func(_ int, o models.Order, _ *time.Location) string { return o.Color }},
	{"Size", 16, "L", func(_ int, o models.Order, _ *time.Location) string { return o.Size }},
	{"Paper", 22, "L", func(_ int, o models.Order, _ *time.Location) string { return o.PaperType }},
	{"Qty", 12, "R", func(_ int, o models.Order, _ *time.Location) string { return strconv.Itoa(o.Quantity) }},
	{"Pickup", 22, "L", func(_ int, o models.Order, _ *time.Location) string { return o.PickupDate }},
	{"Files", 12, "C", func(_ int, o models.Order, _ *time.Location) string { return strconv.Itoa(len(o.AttachedFiles)) }},
	{"Status", 22, "C", func(_ int, o models.Order, _ *time.Location) string { return statusText(o) }},
	{"Created", 27, "L", func(_ int, o models.Order, loc *time.Location) string {
		return o.CreatedAt.In(loc).Format(TimeLayout)
	}},
}

const pdfRowHeight = 7

// OrdersPDF renders orders as a landscape A4 table. The title appears on
// the first page and the column header is repeated on every page.
func OrdersPDF(orders []models.Order, title string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 8, tr(title), "", 1, "C", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s - %d orders", generatedAt.Format(TimeLayout), len(orders)), "", 1, "C", false, 0, "")
			pdf.Ln(3)
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(48, 84, 150)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "", 8)
	loc := generatedAt.Location()
	for i, order := range orders {
		if i%2 == 1 {
			pdf.SetFillColor(242, 242, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, col := range pdfColumns {
			text := fitText(pdf, tr(col.value(i, order, loc)), col.width-2)
			pdf.CellFormat(col.width, pdfRowHeight, text, "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(orders) == 0 {
		pdf.CellFormat(0, pdfRowHeight, "No orders", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fitText shortens text with an ellipsis until it fits in width.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
