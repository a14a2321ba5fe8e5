package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/Dafin1723/fikri-production/internal/models"
)

// ReceiptPDF renders an A5 pickup receipt for one order, with the queue
// number encoded as a QR code.
func ReceiptPDF(order models.Order, shopName string) ([]byte, error) {
	qrPng, err := qrcode.Encode(order.QueueNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr(shopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, order.QueueNumber, "", 1, "C", false, 0, "")

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("queue_qr", imgOptions, bytes.NewReader(qrPng))
	const qrSize = 40.0
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("queue_qr", (pageW-qrSize)/2, pdf.GetY()+2, qrSize, qrSize, false, imgOptions, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 6)

	rows := [][2]string{
		{"Name", order.CustomerName},
		{"Contact", order.Contact},
		{"Email", order.Email},
		{"Print Type", order.PrintType},
		{"Color", order.Color},
		{"Size", order.Size},
		{"Paper", order.PaperType},
		{"Quantity", strconv.Itoa(order.Quantity)},
		{"Pickup Date", order.PickupDate},
		{"Files", strconv.Itoa(len(order.AttachedFiles))},
		{"Status", statusText(order)},
	}
	if order.Notes != "" {
		rows = append(rows, [2]string{"Notes", order.Notes})
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(32, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, tr(row[1]), "B", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Show this receipt or the QR code when you pick up your order.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
